package applets

import (
	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/internal/core"
)

func runCopy(env *Env, argv []string) error {
	return core.Copy(env.walkContext(), argv[1], argv[2])
}

// Remove deletes root and everything below it once root passes the safety
// guard. Partially removed trees are left as they are on failure.
func Remove(env *Env, root string) error {
	if err := roottools.CheckGuard(root); err != nil {
		return err
	}
	return core.Remove(env.walkContext(), root)
}

func runRemove(env *Env, argv []string) error {
	return Remove(env, argv[1])
}
