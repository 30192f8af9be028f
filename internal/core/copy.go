package core

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/roottools"
)

type copyFrame struct {
	src   string
	dst   string
	names []string
	pass  int // 1: non-directories, 2: directories
	pos   int
}

// Copy mirrors the directory src into destParent/<base of src>, keeping
// permission bits and, where the process is allowed to, ownership.
//
// The destination directory and any subdirectory may already exist; existing
// files are truncated and rewritten. Each directory level copies its files
// first and then creates and descends into its subdirectories.
//
// A destination that is src itself or lies below it is refused before
// anything is created. The first failure stops the copy. Whatever was already written stays on
// disk, including a partially written file.
func Copy(ctx *WalkContext, src, destParent string) error {
	logger := ctx.logger.With().Str("op", "copy").Str("src", src).Logger()

	st, err := ctx.lstat(src)
	if err != nil {
		return err
	}
	if st.Type() != roottools.DirEntry {
		return roottools.NewOpError("copy", src, roottools.ErrNotDirectory)
	}
	base := BaseName(src)
	if base == "" {
		return roottools.NewOpError("copy", src, fs.ErrInvalid)
	}
	dest, err := ctx.join(destParent, base)
	if err != nil {
		return err
	}
	if insideSource(src, destParent, base) {
		return roottools.NewOpError("copy", src, roottools.ErrCopyIntoSelf)
	}
	logger.Debug().Str("dest", dest).Msg("Starting copy")

	if err := ctx.mirrorDir(dest, st); err != nil {
		return err
	}

	var files, bytes int64
	stack := []*copyFrame{}
	top, err := ctx.openCopyFrame(src, dest)
	if err != nil {
		return err
	}
	stack = append(stack, top)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.pos == len(f.names) {
			if f.pass == 1 {
				f.pass, f.pos = 2, 0
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}

		name := f.names[f.pos]
		f.pos++
		srcPath, err := ctx.join(f.src, name)
		if err != nil {
			return err
		}
		dstPath, err := ctx.join(f.dst, name)
		if err != nil {
			return err
		}
		st, err := ctx.lstat(srcPath)
		if err != nil {
			return err
		}
		isDir := st.Type() == roottools.DirEntry

		switch {
		case f.pass == 1 && !isDir:
			n, err := ctx.copyFile(srcPath, dstPath, st)
			if err != nil {
				return err
			}
			files++
			bytes += n
		case f.pass == 2 && isDir:
			if err := ctx.mirrorDir(dstPath, st); err != nil {
				return err
			}
			child, err := ctx.openCopyFrame(srcPath, dstPath)
			if err != nil {
				return err
			}
			stack = append(stack, child)
		}
	}

	logger.Debug().Int64("files", files).Int64("bytes", bytes).Msg("Copy complete")
	return nil
}

// insideSource reports whether destParent/base resolves to src or a path
// below it. Unresolvable paths are compared as given, made absolute.
func insideSource(src, destParent, base string) bool {
	srcDir := resolvePath(src)
	dest := filepath.Join(resolvePath(destParent), base)
	return dest == srcDir || strings.HasPrefix(dest, srcDir+string(filepath.Separator))
}

func resolvePath(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func (c *WalkContext) openCopyFrame(src, dst string) (*copyFrame, error) {
	names, err := c.readDir(src)
	if err != nil {
		return nil, err
	}
	return &copyFrame{src: src, dst: dst, names: names, pass: 1}, nil
}

// mirrorDir creates dst with the mode of st unless it already exists, then
// copies the owner.
func (c *WalkContext) mirrorDir(dst string, st *roottools.Status) error {
	if err := c.Ops.Mkdir(dst, st.Perm()); err != nil && !errors.Is(err, fs.ErrExist) {
		return roottools.NewOpError("mkdir", dst, err)
	}
	c.copyOwner(dst, st)
	return nil
}

// copyFile writes the contents of src into dst, created with the mode of st,
// and copies the owner once the contents are complete.
func (c *WalkContext) copyFile(src, dst string, st *roottools.Status) (n int64, err error) {
	in, err := c.Ops.Open(src)
	if err != nil {
		return 0, roottools.NewOpError("open", src, err)
	}
	defer in.Close() // nolint:errcheck

	out, err := c.Ops.Create(dst, st.Perm())
	if err != nil {
		return 0, roottools.NewOpError("open", dst, err)
	}

	bufSize := c.CopyBufSize
	if bufSize <= 0 {
		bufSize = 4096
	}
	n, err = copyContents(out, in, make([]byte, bufSize), src, dst)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = roottools.NewOpError("write", dst, cerr)
	}
	if err != nil {
		return n, err
	}

	c.copyOwner(dst, st)
	c.logger.Trace().Str("src", src).Str("dst", dst).Int64("bytes", n).Msg("Copied file")
	return n, nil
}

// copyOwner is best effort: an unprivileged copy still succeeds with the
// caller as owner.
func (c *WalkContext) copyOwner(dst string, st *roottools.Status) {
	if err := c.Ops.Lchown(dst, int(st.Uid), int(st.Gid)); err != nil {
		c.logger.Warn().Err(err).Str("path", dst).Uint32("uid", st.Uid).Uint32("gid", st.Gid).Msg("Failed to copy owner")
	}
}
