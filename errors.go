package roottools

import (
	"errors"
	"fmt"
)

var (
	// ErrArgCount is returned when an applet gets the wrong number of arguments
	ErrArgCount = errors.New("Wrong # of arguments") // nolint:staticcheck // user facing text
	// ErrGuard is returned for destructive operations on paths not longer than [GuardPrefix]
	ErrGuard = errors.New("path rejected by safety guard")
	// ErrNotDirectory is returned when a tree operation is rooted at a non-directory
	ErrNotDirectory = errors.New("not a directory")
	// ErrPathTooLong is returned when a joined path exceeds the configured maximum
	ErrPathTooLong = errors.New("path too long")
	// ErrOwnerLookup is returned when an owner spec is neither numeric nor a known account
	ErrOwnerLookup = errors.New("owner lookup failed")
	// ErrCopyIntoSelf is returned when a copy destination lies inside its source
	ErrCopyIntoSelf = errors.New("destination inside source")
	// ErrUnknownApplet is returned by the dispatcher for unregistered keywords
	ErrUnknownApplet = errors.New("unknown applet")
)

// GuardPrefix is the sentinel for the minimum path length guard: chown and
// remove refuse any root path whose length does not exceed len(GuardPrefix).
const GuardPrefix = "/data/noensp/"

// CheckGuard rejects paths that are too short to be safely mutated in bulk.
func CheckGuard(path string) error {
	if len(path) <= len(GuardPrefix) {
		return fmt.Errorf("%w: %q", ErrGuard, path)
	}
	return nil
}

// OpError records a failed filesystem call and the path it targeted.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError wraps err unless it is nil or already an *OpError.
func NewOpError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Path: path, Err: err}
}
