package core

import (
	"github.com/brettbedarf/roottools"
)

// walkFrame is one directory on the explicit traversal stack.
type walkFrame struct {
	dir    string
	depth  int    // remaining depth after the decrement on entry
	index  uint64 // node index of dir; parent index of its entries
	names  []string
	pass   int // 1: directories, 2: everything else
	pos    int
	parked *roottools.Visit // subdirectory whose subtree is on the stack above
}

// Walk visits the tree below root depth first and applies action to every
// entry; root itself is not visited. parent is the node index reported for
// root's direct entries.
//
// Each directory is scanned twice. The first pass handles subdirectories: each
// gets the next node index, is descended into while depth remains, and is
// handed to action after its subtree completes. The second pass hands every
// non-directory to action, each with the next node index. Directories at the
// depth limit are still visited, just not descended into.
//
// The first failure (lstat, readdir, path length or action) stops the walk.
// Changes already made by action are kept.
func Walk(ctx *WalkContext, root string, maxDepth int, parent uint64, action roottools.Action) error {
	logger := ctx.logger.With().Str("op", "walk").Str("root", root).Logger()
	logger.Debug().Int("maxDepth", maxDepth).Uint64("parent", parent).Msg("Starting walk")

	top, err := ctx.openWalkFrame(root, maxDepth, parent)
	if err != nil {
		return err
	}
	stack := []*walkFrame{top}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.pos == len(f.names) {
			if f.pass == 1 {
				f.pass, f.pos = 2, 0
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				up := stack[len(stack)-1]
				v := up.parked
				up.parked = nil
				if err := visit(action, v); err != nil {
					return err
				}
			}
			continue
		}

		name := f.names[f.pos]
		f.pos++
		path, err := ctx.join(f.dir, name)
		if err != nil {
			return err
		}
		st, err := ctx.lstat(path)
		if err != nil {
			return err
		}
		isDir := st.Type() == roottools.DirEntry

		switch {
		case f.pass == 1 && isDir:
			v := &roottools.Visit{Path: path, Index: ctx.nextIndex(), Parent: f.index, Stat: st}
			if f.depth > 0 {
				child, err := ctx.openWalkFrame(path, f.depth, v.Index)
				if err != nil {
					return err
				}
				f.parked = v
				stack = append(stack, child)
				continue
			}
			if err := visit(action, v); err != nil {
				return err
			}
		case f.pass == 2 && !isDir:
			v := &roottools.Visit{Path: path, Index: ctx.nextIndex(), Parent: f.index, Stat: st}
			if err := visit(action, v); err != nil {
				return err
			}
		}
	}

	logger.Debug().Uint64("lastIndex", ctx.LastIndex()).Msg("Walk complete")
	return nil
}

func (c *WalkContext) openWalkFrame(dir string, depth int, index uint64) (*walkFrame, error) {
	names, err := c.readDir(dir)
	if err != nil {
		return nil, err
	}
	return &walkFrame{dir: dir, depth: depth - 1, index: index, names: names, pass: 1}, nil
}

func visit(action roottools.Action, v *roottools.Visit) error {
	if err := action.Visit(v); err != nil {
		return roottools.NewOpError("visit", v.Path, err)
	}
	return nil
}
