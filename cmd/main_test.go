package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brettbedarf/roottools/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMain(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRun_FailureIsOneErrLine(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing path", []string{"roottools", "cr", missing}, "~ERR-cr: lstat " + missing + ": no such file or directory\n"},
		{"guard", []string{"roottools", "rm", "/data"}, "~ERR-rm: path rejected by safety guard: \"/data\"\n"},
		{"arity", []string{"/system/bin/cr"}, "~ERR-Wrong # of arguments for cr: 1\n"},
		{"unknown", []string{"roottools", "zz"}, "~ERR-unknown applet: \"zz\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runMain(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want, stderr)
			assert.Empty(t, stdout)
		})
	}
}

func TestRun_Success(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")

	stdout, stderr, code := runMain(t, "roottools", "fe", t.TempDir())
	assert.Equal(t, 0, code)
	assert.Equal(t, "E,y\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_VerboseLogsWithoutColor(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	missing := filepath.Join(t.TempDir(), "missing")

	_, stderr, code := runMain(t, "roottools", "-v", "4", "cr", missing)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Applet failed")
	assert.NotContains(t, stderr, "\x1b[")

	lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
	assert.Equal(t, "~ERR-cr: lstat "+missing+": no such file or directory", lines[len(lines)-1])
}

func TestRun_ConfigFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "roottools.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("crawl_depth: 1\n"), 0o644))
	t.Setenv(config.EnvConfigFile, cfgPath)

	root := filepath.Join(dir, "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

	stdout, stderr, code := runMain(t, "roottools", "cr", root)
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], ","+root+"/a"), lines[0])
}

func TestRun_BadConfigFile(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	cfgPath := filepath.Join(t.TempDir(), "roottools.toml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))

	_, stderr, code := runMain(t, "roottools", "-config", cfgPath, "fe", "/")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "~ERR-loading config "+cfgPath), stderr)
	assert.Equal(t, 1, strings.Count(stderr, "\n"))
}
