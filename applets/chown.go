package applets

import (
	"errors"
	"fmt"
	"math"
	"os/user"
	"strconv"

	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/internal/core"
	"github.com/brettbedarf/roottools/internal/util"
)

// ChownSetter sets owner and group of each visited path without following
// symlinks.
type ChownSetter struct {
	Ops roottools.FileOps
	UID int
	GID int
}

func (c *ChownSetter) Visit(v *roottools.Visit) error {
	if err := c.Ops.Lchown(v.Path, c.UID, c.GID); err != nil {
		return roottools.NewOpError("lchown", v.Path, err)
	}
	return nil
}

func runChown(env *Env, argv []string) error {
	depth, err := strconv.Atoi(argv[2])
	if err != nil {
		return fmt.Errorf("invalid depth %q: %w", argv[2], err)
	}
	return Chown(env, argv[1], depth, argv[3])
}

// Chown gives root and everything below it, up to depth levels, to the
// account named by ownerSpec. Both owner and group are set to the resolved
// id. root itself is changed last, only after the whole walk succeeded.
//
// A failure stops the walk; entries already changed keep their new owner.
func Chown(env *Env, root string, depth int, ownerSpec string) error {
	logger := util.GetLogger("applet.chown")

	if err := roottools.CheckGuard(root); err != nil {
		return err
	}
	ctx := env.walkContext()
	if _, err := ctx.Ops.Lstat(root); err != nil {
		return roottools.NewOpError("lstat", root, err)
	}
	id, err := ResolveOwner(ownerSpec)
	if err != nil {
		return err
	}
	logger.Debug().Str("root", root).Int("depth", depth).Int("id", id).Str("run", ctx.RunID).Msg("Changing owner")

	setter := &ChownSetter{Ops: ctx.Ops, UID: id, GID: id}
	if err := core.Walk(ctx, root, depth, 0, setter); err != nil {
		return err
	}
	return setter.Visit(&roottools.Visit{Path: root})
}

// ResolveOwner turns a decimal id or an account name into a numeric id.
// Ids must fit the kernel's 32-bit uid_t and may not be the reserved
// "unchanged" value.
func ResolveOwner(spec string) (int, error) {
	id, err := parseID(spec)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, strconv.ErrRange) || errors.Is(err, errReservedID) {
		return 0, fmt.Errorf("%w: %q: %v", roottools.ErrOwnerLookup, spec, err)
	}
	u, err := user.Lookup(spec)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", roottools.ErrOwnerLookup, spec, err)
	}
	id, err = parseID(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("%w: %q has unusable uid %q: %v", roottools.ErrOwnerLookup, spec, u.Uid, err)
	}
	return id, nil
}

var errReservedID = errors.New("id reserved by the kernel")

func parseID(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == math.MaxUint32 {
		return 0, errReservedID
	}
	return int(n), nil
}
