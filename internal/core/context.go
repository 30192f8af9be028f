package core

import (
	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/config"
	"github.com/brettbedarf/roottools/internal/util"
	"github.com/google/uuid"
)

// WalkContext holds the mutable state of one top-level tree operation: the
// node index counter, the filesystem backend and the limits taken from config.
// A WalkContext must not be shared between concurrent operations; create a
// new one per invocation.
type WalkContext struct {
	RunID       string // correlates log lines of one invocation
	Ops         roottools.FileOps
	MaxPathLen  int
	CopyBufSize int

	lastIndex uint64 // last node index handed out; 0 before the first
	logger    util.Logger
}

// NewWalkContext creates a fresh context. A nil ops uses [OSOps] and a nil
// cfg uses the config defaults.
func NewWalkContext(ops roottools.FileOps, cfg *config.Config) *WalkContext {
	if ops == nil {
		ops = OSOps{}
	}
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	runID := uuid.NewString()
	logger := util.GetLogger("core")
	return &WalkContext{
		RunID:       runID,
		Ops:         ops,
		MaxPathLen:  cfg.MaxPathLen,
		CopyBufSize: cfg.CopyBufSize,
		logger:      logger.With().Str("run", runID).Logger(),
	}
}

// LastIndex returns the highest node index assigned so far.
func (c *WalkContext) LastIndex() uint64 {
	return c.lastIndex
}

func (c *WalkContext) nextIndex() uint64 {
	c.lastIndex++
	return c.lastIndex
}

func (c *WalkContext) join(dir, name string) (string, error) {
	return JoinPath(dir, name, c.MaxPathLen)
}

// readDir lists dir once; both passes iterate the same slice.
func (c *WalkContext) readDir(dir string) ([]string, error) {
	names, err := c.Ops.ReadDirNames(dir)
	if err != nil {
		return nil, roottools.NewOpError("opendir", dir, err)
	}
	return names, nil
}

func (c *WalkContext) lstat(path string) (*roottools.Status, error) {
	st, err := c.Ops.Lstat(path)
	if err != nil {
		return nil, roottools.NewOpError("lstat", path, err)
	}
	return st, nil
}
