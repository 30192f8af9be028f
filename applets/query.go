package applets

import (
	"fmt"
	"io"
	"os/user"
	"strconv"

	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/internal/core"
	"golang.org/x/sys/unix"
)

// runDiskFree prints D,<total KiB>,<used KiB>,<free KiB>,<block size>
func runDiskFree(env *Env, argv []string) error {
	var st unix.Statfs_t
	if err := unix.Statfs(argv[1], &st); err != nil {
		return roottools.NewOpError("statfs", argv[1], err)
	}
	bsize := uint64(st.Bsize)
	total := st.Blocks * bsize / 1024
	used := (st.Blocks - st.Bfree) * bsize / 1024
	free := st.Bfree * bsize / 1024
	_, err := fmt.Fprintf(env.Stdout, "D,%d,%d,%d,%d\n", total, used, free, bsize)
	return err
}

// runExists prints E,y or E,n. It only fails on output errors.
func runExists(env *Env, argv []string) error {
	exists := 'n'
	if unix.Access(argv[1], unix.F_OK) == nil {
		exists = 'y'
	}
	_, err := fmt.Fprintf(env.Stdout, "E,%c\n", exists)
	return err
}

// runOwner prints O,<account name>, falling back to the numeric uid
func runOwner(env *Env, argv []string) error {
	ctx := env.walkContext()
	st, err := ctx.Ops.Lstat(argv[1])
	if err != nil {
		return roottools.NewOpError("lstat", argv[1], err)
	}
	uid := strconv.FormatUint(uint64(st.Uid), 10)
	name := uid
	if u, err := user.LookupId(uid); err == nil {
		name = u.Username
	}
	_, err = fmt.Fprintf(env.Stdout, "O,%s\n", name)
	return err
}

// runLinks prints l,<name>,<target> for each symlink directly inside a
// directory. Unreadable entries are skipped and reported after the listing.
func runLinks(env *Env, argv []string) error {
	ctx := env.walkContext()
	dir := argv[1]
	names, err := ctx.Ops.ReadDirNames(dir)
	if err != nil {
		return roottools.NewOpError("opendir", dir, err)
	}

	var firstErr error
	for _, name := range names {
		p, err := core.JoinPath(dir, name, ctx.MaxPathLen)
		if err == nil {
			err = printLink(env.Stdout, ctx.Ops, p, name)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func printLink(w io.Writer, ops roottools.FileOps, path, name string) error {
	st, err := ops.Lstat(path)
	if err != nil {
		return roottools.NewOpError("lstat", path, err)
	}
	if st.Type() != roottools.SymlinkEntry {
		return nil
	}
	target, err := ops.Readlink(path)
	if err != nil {
		return roottools.NewOpError("readlink", path, err)
	}
	_, err = fmt.Fprintf(w, "l,%s,%s\n", name, target)
	return err
}

// runReadFile copies a whole file to stdout
func runReadFile(env *Env, argv []string) error {
	ctx := env.walkContext()
	path := argv[1]
	if _, err := ctx.Ops.Lstat(path); err != nil {
		return roottools.NewOpError("lstat", path, err)
	}
	f, err := ctx.Ops.Open(path)
	if err != nil {
		return roottools.NewOpError("open", path, err)
	}
	defer f.Close() // nolint:errcheck

	if _, err := io.Copy(env.Stdout, f); err != nil {
		return roottools.NewOpError("read", path, err)
	}
	return nil
}
