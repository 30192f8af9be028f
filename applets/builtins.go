package applets

// Built-in applet keywords
const (
	ChownKeyword    = "co"
	CopyKeyword     = "cp"
	CrawlKeyword    = "cr"
	RemoveKeyword   = "rm"
	DiskFreeKeyword = "df"
	ExistsKeyword   = "fe"
	OwnerKeyword    = "go"
	LinksKeyword    = "ll"
	ReadFileKeyword = "rf"
)

var builtins = []*Applet{
	{Keyword: ChownKeyword, Usage: "<path> <maxDepth> <owner>", NArgs: 4, Run: runChown},
	{Keyword: CopyKeyword, Usage: "<source> <destParent>", NArgs: 3, Run: runCopy},
	{Keyword: CrawlKeyword, Usage: "<path>", NArgs: 2, Run: runCrawl},
	{Keyword: RemoveKeyword, Usage: "<path>", NArgs: 2, Run: runRemove},
	{Keyword: DiskFreeKeyword, Usage: "<path>", NArgs: 2, Run: runDiskFree},
	{Keyword: ExistsKeyword, Usage: "<path>", NArgs: 2, Run: runExists},
	{Keyword: OwnerKeyword, Usage: "<path>", NArgs: 2, Run: runOwner},
	{Keyword: LinksKeyword, Usage: "<dir>", NArgs: 2, Run: runLinks},
	{Keyword: ReadFileKeyword, Usage: "<path>", NArgs: 2, Run: runReadFile},
}

// RegisterBuiltins registers all built-in applets by default
// or only the specific ones if keywords are provided
func RegisterBuiltins(r *Registry, keywords ...string) {
	if len(keywords) == 0 {
		for _, a := range builtins {
			r.Register(a)
		}
		return
	}
	for _, kw := range keywords {
		for _, a := range builtins {
			if a.Keyword == kw {
				r.Register(a)
			}
		}
	}
}
