package navigation

import (
	"io"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/dom"
)

// DefaultContainerSelector locates the router container under the root.
const DefaultContainerSelector = "[" + dom.AttrRouterContainer + "]"

// Config configures a Router.
type Config struct {
	// Routes are the declared routes, in application order.
	Routes []string

	// Root is the element that owns the router. Shared blocks are looked
	// up under it.
	Root *html.Node

	// ContainerSelector selects the container under Root that layouts and
	// views render into. Defaults to DefaultContainerSelector; when nothing
	// matches, Root itself is the container.
	ContainerSelector string

	// Location supplies the fragment. Defaults to an empty MemoryLocation.
	Location Location

	// OnChange is called after every render.
	OnChange func(Change)

	// Logger receives debug diagnostics about missing templates.
	Logger *slog.Logger
}

// Change describes a committed navigation.
type Change struct {
	// Route is the matched route, or NotFound.
	Route string
	// Stack is the route stack that was rendered.
	Stack []string
	// Raw is the normalized path before matching.
	Raw string
}

// Result is the route and stack after a navigation.
type Result struct {
	Route string
	Stack []string
}

type routerState int

const (
	stateIdle routerState = iota
	stateStarted
	stateDisposed
)

// Router renders layout and view templates into a container according to
// the current fragment.
//
// A Router starts idle. Start renders the current fragment and begins
// listening; Dispose stops listening for good. Router is not safe for
// concurrent use.
type Router struct {
	routes    []string
	root      *html.Node
	container *html.Node
	location  Location
	onChange  func(Change)
	logger    *slog.Logger

	layouts map[string]*html.Node
	views   map[string]*html.Node

	current string
	stack   []string
	state   routerState
	cancel  func()
}

// New creates a router and captures its templates: every layout and view
// under the container is cloned into a template and removed from the tree.
// Views nested inside a layout are extracted before the layout is stored,
// so layout templates hold only their slot.
func New(cfg Config) *Router {
	root := cfg.Root
	if root == nil {
		root = dom.NewElement("div")
	}
	selector := cfg.ContainerSelector
	if selector == "" {
		selector = DefaultContainerSelector
	}
	container := dom.Select(root, selector)
	if container == nil {
		container = root
	}
	location := cfg.Location
	if location == nil {
		location = NewMemoryLocation("", nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Router{
		routes:    slices.Clone(cfg.Routes),
		root:      root,
		container: container,
		location:  location,
		onChange:  cfg.OnChange,
		logger:    logger,
		layouts:   make(map[string]*html.Node),
		views:     make(map[string]*html.Node),
	}
	r.captureTemplates()

	r.current = r.MatchRoute(NormalizeRoute(location.Hash()))
	r.stack = BuildRouteStack(r.current)
	return r
}

func (r *Router) captureTemplates() {
	for _, layout := range dom.QueryAllAttr(r.container, dom.AttrRouteLayout) {
		for _, view := range dom.QueryAllAttr(layout, dom.AttrRouteView) {
			name, _ := dom.Attr(view, dom.AttrRouteView)
			r.views[name] = dom.Clone(view)
			dom.Remove(view)
		}
		name, _ := dom.Attr(layout, dom.AttrRouteLayout)
		r.layouts[name] = dom.Clone(layout)
		dom.Remove(layout)
	}
	for _, view := range dom.QueryAllAttr(r.container, dom.AttrRouteView) {
		name, _ := dom.Attr(view, dom.AttrRouteView)
		r.views[name] = dom.Clone(view)
		dom.Remove(view)
	}
}

// Route returns the current matched route.
func (r *Router) Route() string { return r.current }

// Stack returns the current route stack.
func (r *Router) Stack() []string { return slices.Clone(r.stack) }

// Routes returns the declared routes.
func (r *Router) Routes() []string { return slices.Clone(r.routes) }

// Container returns the node layouts and views render into.
func (r *Router) Container() *html.Node { return r.container }

// MatchRoute matches path against the router's declared routes.
func (r *Router) MatchRoute(path string) string {
	return MatchRoute(path, r.routes)
}

// Started reports whether the router is listening.
func (r *Router) Started() bool { return r.state == stateStarted }

// Start renders the current fragment and starts listening for fragment
// changes. Calling Start again while started returns the current result
// without rendering. A disposed router cannot be restarted.
func (r *Router) Start() Result {
	if r.state != stateIdle {
		return r.result()
	}
	r.state = stateStarted
	res := r.emit(NormalizeRoute(r.location.Hash()))
	r.cancel = r.location.Subscribe(r.handleHashChange)
	return res
}

// Navigate moves to path. The fragment is written only when it differs
// from the normalized target, but the route is always rendered and
// reported, so navigating to the current route re-renders it.
func (r *Router) Navigate(path string) Result {
	if r.state == stateDisposed {
		return r.result()
	}
	normalized := NormalizeRoute(path)
	if normalized != trimHash(r.location.Hash()) {
		r.location.SetHash(normalized)
	}
	return r.emit(normalized)
}

// Dispose stops listening for fragment changes. It is idempotent.
func (r *Router) Dispose() {
	if r.state == stateDisposed {
		return
	}
	r.state = stateDisposed
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Router) handleHashChange() {
	if r.state != stateStarted {
		return
	}
	r.emit(NormalizeRoute(r.location.Hash()))
}

func (r *Router) emit(path string) Result {
	r.current = r.MatchRoute(path)
	r.stack = BuildRouteStack(r.current)
	r.renderStack(r.stack)
	r.applySharedViews(r.stack)
	if r.onChange != nil {
		r.onChange(Change{Route: r.current, Stack: slices.Clone(r.stack), Raw: path})
	}
	return r.result()
}

func (r *Router) result() Result {
	return Result{Route: r.current, Stack: slices.Clone(r.stack)}
}

// renderStack rebuilds the container: each stack entry with a layout nests
// a fresh clone into the previous slot, and the last entry contributes its
// view.
func (r *Router) renderStack(stack []string) {
	dom.RemoveChildren(r.container)
	parent := r.container

	for i, path := range stack {
		if layout, ok := r.layouts[path]; ok {
			n := dom.Clone(layout)
			dom.Append(parent, n)
			parent = n
			if slot := dom.QueryAttr(n, dom.AttrRouteSlot); slot != nil {
				parent = slot
			}
		}
		if i == len(stack)-1 {
			dom.Append(parent, dom.Clone(r.viewFor(path)))
		}
	}
}

func (r *Router) viewFor(path string) *html.Node {
	for _, name := range []string{path, NotFound, "/" + NotFound} {
		if view, ok := r.views[name]; ok {
			return view
		}
	}
	r.logger.Debug("no view template", "route", path)
	return dom.NewElement("div")
}

// applySharedViews shows every shared block whose target is anywhere on
// the stack and hides the rest.
func (r *Router) applySharedViews(stack []string) {
	for _, block := range dom.QueryAllAttr(r.root, dom.AttrRouteShared) {
		target, _ := dom.Attr(block, dom.AttrRouteShared)
		dom.SetVisible(block, target != "" && slices.Contains(stack, target))
	}
}

func trimHash(hash string) string {
	if len(hash) > 0 && hash[0] == '#' {
		return hash[1:]
	}
	return hash
}
