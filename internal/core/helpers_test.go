package core

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/config"
	"github.com/stretchr/testify/require"
)

// makeTree creates entries below root. Keys ending in "/" are directories,
// everything else is a file with the mapped content.
func makeTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0o755))
	for rel, content := range entries {
		p := filepath.Join(root, rel)
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// exampleTree builds app/{a.txt, sub/b.txt} and returns the app path
func exampleTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "app")
	makeTree(t, root, map[string]string{
		"a.txt":     "0123456789",
		"sub/b.txt": "hello",
	})
	return root
}

func newTestContext(ops roottools.FileOps) *WalkContext {
	return NewWalkContext(ops, config.NewDefaultConfig())
}

// recordingOps passes calls through to the OS, records the mutating ones in
// order, and fails calls listed in fail ("op path" keys).
type recordingOps struct {
	OSOps
	calls []string
	fail  map[string]error
}

func newRecordingOps() *recordingOps {
	return &recordingOps{fail: map[string]error{}}
}

func (r *recordingOps) record(op, path string) error {
	key := op + " " + path
	if err, ok := r.fail[key]; ok {
		return err
	}
	r.calls = append(r.calls, key)
	return nil
}

func (r *recordingOps) Unlink(path string) error {
	if err := r.record("unlink", path); err != nil {
		return err
	}
	return r.OSOps.Unlink(path)
}

func (r *recordingOps) Rmdir(path string) error {
	if err := r.record("rmdir", path); err != nil {
		return err
	}
	return r.OSOps.Rmdir(path)
}

func (r *recordingOps) Mkdir(path string, perm uint32) error {
	if err := r.record("mkdir", path); err != nil {
		return err
	}
	return r.OSOps.Mkdir(path, perm)
}

func (r *recordingOps) Open(path string) (io.ReadCloser, error) {
	if err := r.record("open", path); err != nil {
		return nil, err
	}
	return r.OSOps.Open(path)
}

func (r *recordingOps) Lchown(path string, uid, gid int) error {
	return r.record("lchown", path)
}
