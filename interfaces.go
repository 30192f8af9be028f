// Package roottools contains the core domain types and interfaces shared by the
// privileged tree operations (crawl, chown, copy, remove) and their applets.
package roottools

import "io"

// Visit describes one entry handed to an [Action] by the traversal engine.
type Visit struct {
	Path   string  // full path of the entry
	Index  uint64  // node id assigned to this entry
	Parent uint64  // node id of the containing directory; 0 at the top level
	Stat   *Status // lstat snapshot taken during the pass that visits the entry
}

// Action is applied by the traversal engine to every visited entry.
// Directories are visited after their whole subtree.
// A non-nil error aborts the rest of the walk.
type Action interface {
	Visit(v *Visit) error
}

// ActionFunc adapts an ordinary function to the [Action] interface.
type ActionFunc func(v *Visit) error

func (f ActionFunc) Visit(v *Visit) error {
	return f(v)
}

// FileOps is the set of filesystem calls the tree operations rely on.
// None of the methods follow a trailing symlink except Open.
// The default implementation lives in internal/core; tests substitute their own
// to inject failures or count calls.
type FileOps interface {
	// Lstat returns the status of path without following symlinks
	Lstat(path string) (*Status, error)

	// ReadDirNames returns the entry names of a directory, sorted, without "." and ".."
	ReadDirNames(path string) ([]string, error)

	Lchown(path string, uid, gid int) error
	Mkdir(path string, perm uint32) error
	Rmdir(path string) error
	Unlink(path string) error
	Readlink(path string) (string, error)

	// Open opens path for reading
	Open(path string) (io.ReadCloser, error)

	// Create opens path for writing, creating it with perm or truncating it
	Create(path string, perm uint32) (io.WriteCloser, error)
}
