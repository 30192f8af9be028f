package core

import (
	"io"
	"os"
	"sort"
	"syscall"

	"github.com/brettbedarf/roottools"
	"golang.org/x/sys/unix"
)

// OSOps implements [roottools.FileOps] with direct system calls.
// Every error is returned as a *roottools.OpError.
type OSOps struct{}

var _ roottools.FileOps = OSOps{}

func (OSOps) Lstat(path string) (*roottools.Status, error) {
	var st syscall.Stat_t
	for {
		err := syscall.Lstat(path, &st)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			return nil, roottools.NewOpError("lstat", path, err)
		}
		return roottools.NewStatus(&st), nil
	}
}

func (OSOps) ReadDirNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, roottools.NewOpError("opendir", path, unwrapPathError(err))
	}
	defer f.Close() // nolint:errcheck

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, roottools.NewOpError("opendir", path, unwrapPathError(err))
	}
	kept := names[:0]
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		kept = append(kept, name)
	}
	sort.Strings(kept)
	return kept, nil
}

func (OSOps) Lchown(path string, uid, gid int) error {
	return roottools.NewOpError("lchown", path, unix.Lchown(path, uid, gid))
}

func (OSOps) Mkdir(path string, perm uint32) error {
	return roottools.NewOpError("mkdir", path, unix.Mkdir(path, perm))
}

func (OSOps) Rmdir(path string) error {
	return roottools.NewOpError("rmdir", path, unix.Rmdir(path))
}

func (OSOps) Unlink(path string) error {
	return roottools.NewOpError("unlink", path, unix.Unlink(path))
}

func (OSOps) Readlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", roottools.NewOpError("readlink", path, unwrapPathError(err))
	}
	return target, nil
}

func (OSOps) Open(path string) (io.ReadCloser, error) {
	return openFile(path, unix.O_RDONLY, 0)
}

func (OSOps) Create(path string, perm uint32) (io.WriteCloser, error) {
	return openFile(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, perm)
}

func openFile(path string, flags int, perm uint32) (*os.File, error) {
	for {
		fd, err := unix.Open(path, flags|unix.O_CLOEXEC, perm)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, roottools.NewOpError("open", path, err)
		}
		return os.NewFile(uintptr(fd), path), nil
	}
}

// unwrapPathError strips *os.PathError so the OpError carries the errno directly.
func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
