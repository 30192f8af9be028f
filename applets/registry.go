package applets

import (
	"fmt"
	"sort"

	"github.com/brettbedarf/roottools"
	"github.com/puzpuzpuz/xsync/v4"
)

// Registry maps invocation keywords to applets.
type Registry struct {
	applets *xsync.Map[string, *Applet]
}

func NewRegistry() *Registry {
	return &Registry{applets: xsync.NewMap[string, *Applet]()}
}

// Register adds an applet under its keyword. The first registration of a
// keyword wins; later ones are ignored.
func (r *Registry) Register(applet *Applet) {
	r.applets.LoadOrStore(applet.Keyword, applet)
}

// Get returns the applet for keyword.
func (r *Registry) Get(keyword string) (*Applet, error) {
	applet, ok := r.applets.Load(keyword)
	if !ok {
		return nil, fmt.Errorf("%w: %q", roottools.ErrUnknownApplet, keyword)
	}
	return applet, nil
}

// Keywords lists the registered keywords in sorted order.
func (r *Registry) Keywords() []string {
	keys := make([]string, 0, r.applets.Size())
	r.applets.Range(func(key string, _ *Applet) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return keys
}
