package core

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/roottools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSOps_LstatClassifies(t *testing.T) {
	t.Parallel()

	root := exampleTree(t)
	require.NoError(t, os.Symlink("sub", filepath.Join(root, "link")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tool"), []byte("#!"), 0o744))
	ops := OSOps{}

	tests := []struct {
		rel  string
		typ  roottools.EntryType
		exec byte
		size uint64
	}{
		{"a.txt", roottools.FileEntry, '-', 10},
		{"sub", roottools.DirEntry, 'x', 0},
		{"link", roottools.SymlinkEntry, '-', 3},
		{"tool", roottools.FileEntry, 'x', 2},
	}
	for _, tt := range tests {
		st, err := ops.Lstat(filepath.Join(root, tt.rel))
		require.NoError(t, err)
		assert.Equal(t, tt.typ, st.Type(), tt.rel)
		assert.Equal(t, tt.exec, st.ExecTag(), tt.rel)
		if tt.typ != roottools.DirEntry {
			assert.Equal(t, tt.size, st.Size, tt.rel)
		}
	}
}

func TestOSOps_ReadDirNamesSorted(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "d")
	makeTree(t, root, map[string]string{"c": "", "a": "", "b/": ""})

	names, err := OSOps{}.ReadDirNames(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestOSOps_MkdirExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := OSOps{}.Mkdir(dir, 0o755)

	assert.ErrorIs(t, err, os.ErrExist)
	var opErr *roottools.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "mkdir", opErr.Op)
}

func TestOSOps_CreateTruncates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("long old content"), 0o600))

	w, err := OSOps{}.Create(path, 0o600)
	require.NoError(t, err)
	_, err = io.WriteString(w, "new")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
