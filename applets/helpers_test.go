package applets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/config"
	"github.com/brettbedarf/roottools/internal/core"
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

type testEnv struct {
	*Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(ops roottools.FileOps) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Env: &Env{
			Stdout: stdout,
			Stderr: stderr,
			Cfg:    config.NewDefaultConfig(),
			Ops:    ops,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

type chownCall struct {
	Path string
	UID  int
	GID  int
}

// chownRecorder reads the real filesystem but only records ownership
// changes, so tests run without privileges.
type chownRecorder struct {
	core.OSOps
	calls []chownCall
	fail  map[string]error
}

func (c *chownRecorder) Lchown(path string, uid, gid int) error {
	if err, ok := c.fail[path]; ok {
		return roottools.NewOpError("lchown", path, err)
	}
	c.calls = append(c.calls, chownCall{Path: path, UID: uid, GID: gid})
	return nil
}
