package roottools

import (
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// EntryType is the one character type tag used in crawl records
type EntryType byte

const (
	FileEntry    EntryType = 'f'
	DirEntry     EntryType = 'd'
	SymlinkEntry EntryType = 'l'
)

// Status is an immutable lstat snapshot of one entry.
// Everything that is neither a directory nor a symlink is reported as a file.
type Status struct {
	fuse.Attr
}

// NewStatus converts a raw stat record.
func NewStatus(st *syscall.Stat_t) *Status {
	s := &Status{}
	s.FromStat(st)
	return s
}

// Type classifies the entry. Symlinks win over everything else since the
// status never follows them.
func (s *Status) Type() EntryType {
	switch {
	case s.IsSymlink():
		return SymlinkEntry
	case s.IsDir():
		return DirEntry
	default:
		return FileEntry
	}
}

// Executable reports whether the owner execute bit is set on a non-symlink.
func (s *Status) Executable() bool {
	return s.Type() != SymlinkEntry && s.Mode&syscall.S_IXUSR != 0
}

// ExecTag returns 'x' for executable entries and '-' otherwise.
func (s *Status) ExecTag() byte {
	if s.Executable() {
		return 'x'
	}
	return '-'
}

// Perm returns the permission bits including setuid, setgid and sticky.
func (s *Status) Perm() uint32 {
	return s.Mode & 0o7777
}
