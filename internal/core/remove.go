package core

import (
	"github.com/brettbedarf/roottools"
)

type removeFrame struct {
	dir   string
	names []string
	pass  int // 1: directories, 2: everything else
	pos   int
}

// Remove deletes the directory root and everything below it. Each directory
// level first empties and removes its subdirectories, then unlinks the
// remaining entries; root goes last.
//
// The first failure stops the removal and nothing is restored: the failing
// entry and all its ancestors remain, siblings handled earlier are gone.
// Callers are responsible for [roottools.CheckGuard].
func Remove(ctx *WalkContext, root string) error {
	logger := ctx.logger.With().Str("op", "remove").Str("root", root).Logger()

	st, err := ctx.lstat(root)
	if err != nil {
		return err
	}
	if st.Type() != roottools.DirEntry {
		return roottools.NewOpError("remove", root, roottools.ErrNotDirectory)
	}

	top, err := ctx.openRemoveFrame(root)
	if err != nil {
		return err
	}
	stack := []*removeFrame{top}
	var removed int

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.pos == len(f.names) {
			if f.pass == 1 {
				f.pass, f.pos = 2, 0
				continue
			}
			stack = stack[:len(stack)-1]
			if err := ctx.Ops.Rmdir(f.dir); err != nil {
				return roottools.NewOpError("rmdir", f.dir, err)
			}
			removed++
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
			child, err := ctx.openRemoveFrame(path)
			if err != nil {
				return err
			}
			stack = append(stack, child)
		case f.pass == 2 && !isDir:
			if err := ctx.Ops.Unlink(path); err != nil {
				return roottools.NewOpError("unlink", path, err)
			}
			removed++
		}
	}

	logger.Debug().Int("removed", removed).Msg("Remove complete")
	return nil
}

func (c *WalkContext) openRemoveFrame(dir string) (*removeFrame, error) {
	names, err := c.readDir(dir)
	if err != nil {
		return nil, err
	}
	return &removeFrame{dir: dir, names: names, pass: 1}, nil
}
