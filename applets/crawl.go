package applets

import (
	"bufio"
	"fmt"
	"io"

	"github.com/brettbedarf/roottools"
	"github.com/brettbedarf/roottools/internal/core"
	"github.com/brettbedarf/roottools/internal/util"
)

// CrawlReporter writes one inventory record per visited entry:
//
//	<index>,<parent>,<l|d|f>,<x|->,<size>,<blocks>,<path>
type CrawlReporter struct {
	W io.Writer
}

// Visit never fails; write errors surface when the caller flushes W.
func (r *CrawlReporter) Visit(v *roottools.Visit) error {
	fmt.Fprintf(r.W, "%d,%d,%c,%c,%d,%d,%s\n",
		v.Index, v.Parent, v.Stat.Type(), v.Stat.ExecTag(), v.Stat.Size, v.Stat.Blocks, v.Path)
	return nil
}

func runCrawl(env *Env, argv []string) error {
	return Crawl(env, argv[1])
}

// Crawl prints the inventory of everything below root, in traversal order,
// up to the configured crawl depth.
func Crawl(env *Env, root string) error {
	logger := util.GetLogger("applet.crawl")
	ctx := env.walkContext()

	if _, err := ctx.Ops.Lstat(root); err != nil {
		return roottools.NewOpError("lstat", root, err)
	}

	out := bufio.NewWriter(env.Stdout)
	err := core.Walk(ctx, root, env.config().CrawlDepth, 0, &CrawlReporter{W: out})
	// records emitted before a failure are still delivered
	if ferr := out.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("writing crawl records: %w", ferr)
	}
	if err != nil {
		return err
	}
	logger.Debug().Str("root", root).Str("run", ctx.RunID).Uint64("entries", ctx.LastIndex()).Msg("Crawl complete")
	return nil
}
