// Package app is the demo application served by the lite command: an App
// shell with a hash router and a Count component with list state.
package app

import (
	"embed"
	goerrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/component"
	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/dom"
	"github.com/go-drift/lite/pkg/errors"
	"github.com/go-drift/lite/pkg/frame"
	"github.com/go-drift/lite/pkg/navigation"
	"github.com/go-drift/lite/pkg/persist"
)

//go:embed web
var webFS embed.FS

// Options configures an App.
type Options struct {
	// Name is shown as the page title.
	Name string
	// Routes are the declared routes.
	Routes []string
	// Initial is the starting fragment.
	Initial string
	// Scheduler paces frames. Required.
	Scheduler frame.Scheduler
	// Logger receives runtime diagnostics. Defaults to discarding.
	Logger *slog.Logger
	// Store, when set, keeps Count's state across runs.
	Store persist.Store
	// IDGenerator overrides component id generation.
	IDGenerator func(tag string) string
}

// App is a mounted demo page.
type App struct {
	runtime  *core.Runtime
	registry *component.Registry
	location *navigation.MemoryLocation
	router   *navigation.Router
	page     *html.Node
	shell    *component.Instance
	store    persist.Store
	logger   *slog.Logger
}

// New mounts the demo page. Frames requested while mounting run on the
// scheduler; nothing is rendered until they do.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rtOpts := []core.Option{core.WithLogger(logger)}
	if opts.IDGenerator != nil {
		rtOpts = append(rtOpts, core.WithIDGenerator(opts.IDGenerator))
	}

	web, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil, err
	}

	a := &App{
		runtime:  core.NewRuntime(opts.Scheduler, rtOpts...),
		location: navigation.NewMemoryLocation(opts.Initial, opts.Scheduler),
		page:     dom.NewElement("body"),
		store:    opts.Store,
		logger:   logger,
	}
	a.registry = component.NewRegistry(a.runtime, component.NewLoader(web))

	defs := []component.Definition{
		a.shellDefinition(opts.Name, opts.Routes),
		a.countDefinition(),
		badgeDefinition(),
	}
	for _, def := range defs {
		if err := a.registry.Define(def); err != nil {
			return nil, err
		}
	}

	dom.Append(a.page, dom.NewElement(shellTag))
	a.shell, err = mountShell(a.registry, a.page)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// mountShell mounts page and returns the shell instance.
func mountShell(reg *component.Registry, page *html.Node) (*component.Instance, error) {
	mounted, err := reg.MountTree(page)
	if err != nil {
		return nil, err
	}
	for _, in := range mounted {
		if in.Definition().Tag == shellTag {
			return in, nil
		}
	}
	return nil, &errors.LiteError{
		Op:        "app.New",
		Kind:      errors.KindInit,
		Component: shellTag,
		Err:       goerrors.New("app-component not mounted"),
	}
}

// Runtime returns the app's runtime.
func (a *App) Runtime() *core.Runtime { return a.runtime }

// Registry returns the component registry.
func (a *App) Registry() *component.Registry { return a.registry }

// Router returns the shell's router.
func (a *App) Router() *navigation.Router { return a.router }

// Location returns the fragment source.
func (a *App) Location() *navigation.MemoryLocation { return a.location }

// Page returns the page root.
func (a *App) Page() *html.Node { return a.page }

// Navigate moves the router to path.
func (a *App) Navigate(path string) navigation.Result {
	return a.router.Navigate(path)
}

// Click dispatches a click to the first element matching selector.
func (a *App) Click(selector string) bool {
	n := dom.Select(a.page, selector)
	if n == nil {
		return false
	}
	return a.registry.Dispatch(n, "click")
}

// HTML returns the rendered page.
func (a *App) HTML() string {
	return dom.Render(a.page)
}

// Tree returns an outline of the visible page.
func (a *App) Tree() string {
	return strings.Join(dom.VisibleOutline(a.page), "\n")
}

// Close releases every component.
func (a *App) Close() {
	dom.RemoveChildren(a.page)
	a.registry.Sweep(a.page)
}
