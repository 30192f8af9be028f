// Package applets implements the named sub-commands of the roottools binary and
// the dispatcher that selects one from the invocation name.
package applets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/config"
	"github.com/brettbedarf/roottools/internal/core"
	"github.com/brettbedarf/roottools/internal/util"
)

// BinaryName is the tool's own name. Invoked under it, the applet keyword is
// taken from the first argument instead of argv[0].
const BinaryName = "roottools"

// Applet is one named operation. NArgs counts argv including the keyword.
type Applet struct {
	Keyword string
	Usage   string
	NArgs   int
	Run     func(env *Env, argv []string) error
}

// Env carries everything an applet touches outside its arguments.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Cfg    *config.Config
	Ops    roottools.FileOps // nil means the real filesystem
}

// NewEnv returns an Env writing to stdout and stderr. Nil writers fall back
// to the process streams.
func NewEnv(cfg *config.Config, stdout, stderr io.Writer) *Env {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Env{Stdout: stdout, Stderr: stderr, Cfg: cfg}
}

func (e *Env) config() *config.Config {
	if e.Cfg == nil {
		return config.NewDefaultConfig()
	}
	return e.Cfg
}

// walkContext starts a fresh per-invocation traversal context
func (e *Env) walkContext() *core.WalkContext {
	return core.NewWalkContext(e.Ops, e.config())
}

// Run resolves the applet named by argv, checks its arity and runs it.
// It returns the process exit code; failures are reported on env.Stderr as
// a single "~ERR-" line.
func Run(r *Registry, env *Env, argv []string) int {
	logger := util.GetLogger("dispatch")

	argv = appletArgv(argv)
	if len(argv) == 0 {
		return fail(env, fmt.Errorf("%w: none given", roottools.ErrUnknownApplet))
	}
	applet, err := r.Get(argv[0])
	if err != nil {
		return fail(env, err)
	}
	if len(argv) != applet.NArgs {
		logger.Debug().Str("applet", applet.Keyword).Str("usage", applet.Usage).Msg("Wrong argument count")
		return fail(env, fmt.Errorf("%w for %s: %d", roottools.ErrArgCount, applet.Keyword, len(argv)))
	}

	logger.Debug().Strs("argv", argv).Msg("Running applet")
	if err := applet.Run(env, argv); err != nil {
		// the ~ERR- line is the user facing report
		logger.Debug().Err(err).Str("applet", applet.Keyword).Msg("Applet failed")
		return fail(env, fmt.Errorf("%s: %w", applet.Keyword, err))
	}
	return 0
}

// appletArgv strips the binary name when the tool is not invoked through a
// link named after the applet.
func appletArgv(argv []string) []string {
	if len(argv) == 0 {
		return argv
	}
	argv = append([]string{filepath.Base(argv[0])}, argv[1:]...)
	if argv[0] == BinaryName {
		argv = argv[1:]
		if len(argv) > 0 {
			argv[0] = filepath.Base(argv[0])
		}
	}
	return argv
}

func fail(env *Env, err error) int {
	fmt.Fprintf(env.Stderr, "~ERR-%s\n", err)
	return 1
}
