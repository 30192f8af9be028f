package roottools

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", true},
		{"/", true},
		{"/data", true},
		{GuardPrefix, true},
		{strings.Repeat("x", len(GuardPrefix)), true},
		{GuardPrefix + "a", false},
		{"/data/noensp/app", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			err := CheckGuard(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrGuard)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewOpError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewOpError("lstat", "/x", nil))

	err := NewOpError("lstat", "/x", syscall.ENOENT)
	assert.EqualError(t, err, "lstat /x: no such file or directory")
	assert.ErrorIs(t, err, syscall.ENOENT)

	// the innermost operation is kept when wrapping again
	wrapped := NewOpError("visit", "/y", fmt.Errorf("context: %w", err))
	var opErr *OpError
	require.True(t, errors.As(wrapped, &opErr))
	assert.Equal(t, "lstat", opErr.Op)
	assert.Equal(t, "/x", opErr.Path)
}

func TestStatus_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     uint32
		wantType EntryType
		wantExec byte
	}{
		{"regular", syscall.S_IFREG | 0o644, FileEntry, '-'},
		{"executable", syscall.S_IFREG | 0o744, FileEntry, 'x'},
		{"group exec only", syscall.S_IFREG | 0o654, FileEntry, '-'},
		{"directory", syscall.S_IFDIR | 0o755, DirEntry, 'x'},
		{"symlink", syscall.S_IFLNK | 0o777, SymlinkEntry, '-'},
		{"fifo", syscall.S_IFIFO | 0o600, FileEntry, '-'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := NewStatus(&syscall.Stat_t{Mode: tt.mode, Size: 3, Blocks: 8, Uid: 5, Gid: 6})
			assert.Equal(t, tt.wantType, st.Type())
			assert.Equal(t, tt.wantExec, st.ExecTag())
			assert.Equal(t, tt.mode&0o7777, st.Perm())
			assert.Equal(t, uint64(3), st.Size)
			assert.Equal(t, uint64(8), st.Blocks)
			assert.Equal(t, uint32(5), st.Uid)
			assert.Equal(t, uint32(6), st.Gid)
		})
	}
}
