package component

import (
	goerrors "errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/dom"
	"github.com/go-drift/lite/pkg/errors"
)

var (
	errSetupPanicked = goerrors.New("setup panicked")
	errBindPanicked  = goerrors.New("bind panicked")
)

// Event is delivered to handlers bound with data-on.
type Event struct {
	Type     string
	Target   *html.Node
	Instance *Instance
}

// Handler handles an Event.
type Handler func(Event)

type binding struct {
	event   string
	handler string
}

// Instance is a mounted component.
type Instance struct {
	def      *Definition
	comp     *core.Component
	host     *html.Node
	registry *Registry
	handlers map[string]Handler
	bindings map[*html.Node][]binding
	released bool
}

// Component returns the core component driving the instance.
func (in *Instance) Component() *core.Component { return in.comp }

// Host returns the element the instance is mounted on.
func (in *Instance) Host() *html.Node { return in.host }

// Definition returns the definition the instance was mounted from.
func (in *Instance) Definition() *Definition { return in.def }

// Registry returns the registry that mounted the instance, or nil when it
// was mounted directly with Mount.
func (in *Instance) Registry() *Registry { return in.registry }

// Released reports whether the instance has been released.
func (in *Instance) Released() bool { return in.released }

// On registers handler under name. Elements refer to it with
// data-on="type:name".
func (in *Instance) On(name string, handler Handler) {
	in.handlers[name] = handler
}

// Dispatch fires the handler bound to target for eventType. It reports
// whether a handler ran.
func (in *Instance) Dispatch(target *html.Node, eventType string) bool {
	if in.released {
		return false
	}
	for _, b := range in.bindings[target] {
		if b.event != eventType {
			continue
		}
		h, ok := in.handlers[b.handler]
		if !ok {
			continue
		}
		ev := Event{Type: eventType, Target: target, Instance: in}
		errors.Guard("component.Dispatch", func() { h(ev) })
		return true
	}
	return false
}

// Release runs Teardown and releases the core component. It is idempotent.
func (in *Instance) Release() {
	if in.released {
		return
	}
	in.released = true
	if in.def.Teardown != nil {
		errors.Guard("component.Teardown", func() { in.def.Teardown(in) })
	}
	in.comp.Runtime().Release(in.comp)
}

// bind snapshots the data-on elements currently under the host.
func (in *Instance) bind() {
	for _, n := range dom.QueryAllAttr(in.host, dom.AttrOn) {
		on, _ := dom.Attr(n, dom.AttrOn)
		parts := strings.Split(on, ":")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		in.bindings[n] = append(in.bindings[n], binding{event: parts[0], handler: parts[1]})
	}
}

// Mount mounts def on host: it registers a component, runs Setup, replaces
// the host's children with the style and template, and runs Bind. If host
// carries data-root, a frame is requested that connects the component to
// its parent's record.
//
// A template that cannot be loaded fails the mount after the component is
// registered; a style that cannot be loaded is skipped.
func Mount(rt *core.Runtime, loader *Loader, def *Definition, host *html.Node) (*Instance, error) {
	return mount(rt, loader, def, host, nil)
}

func mount(rt *core.Runtime, loader *Loader, def *Definition, host *html.Node, registry *Registry) (*Instance, error) {
	comp := rt.Register(def.Tag, host)
	in := &Instance{
		def:      def,
		comp:     comp,
		host:     host,
		registry: registry,
		handlers: make(map[string]Handler),
		bindings: make(map[*html.Node][]binding),
	}

	template, err := loadTemplate(loader, def)
	if err != nil {
		return in, &errors.LiteError{
			Op:        "component.Mount",
			Kind:      errors.KindTemplate,
			Component: def.Tag,
			Err:       err,
		}
	}
	css := loadStyle(rt, loader, def)

	if def.Setup != nil {
		scope := &Scope{Component: comp}
		if !errors.Guard("component.Setup", func() { def.Setup(scope) }) {
			return in, &errors.LiteError{
				Op:        "component.Mount",
				Kind:      errors.KindPanic,
				Component: def.Tag,
				Err:       errSetupPanicked,
			}
		}
	}

	if dom.HasAttr(host, dom.AttrRoot) {
		rt.Scheduler().RequestFrame(func() {
			if comp.Released() {
				return
			}
			if !rt.ConnectParent(comp) {
				rt.Logger().Debug("parent not connected", "component", def.Tag, "parent", comp.ParentID())
			}
		})
	}

	markup := template
	if css != "" {
		markup = "<style>" + css + "</style>" + template
	}
	if err := dom.SetInnerHTML(host, markup); err != nil {
		return in, &errors.LiteError{
			Op:        "component.Mount",
			Kind:      errors.KindRender,
			Component: def.Tag,
			Err:       err,
		}
	}

	if def.Bind != nil {
		if !errors.Guard("component.Bind", func() { def.Bind(in) }) {
			return in, &errors.LiteError{
				Op:        "component.Mount",
				Kind:      errors.KindPanic,
				Component: def.Tag,
				Err:       errBindPanicked,
			}
		}
	}
	in.bind()
	return in, nil
}

func loadTemplate(loader *Loader, def *Definition) (string, error) {
	if def.Template != "" {
		return def.Template, nil
	}
	if loader == nil {
		return "", fmt.Errorf("no loader for %s", def.templatePath())
	}
	return loader.Load(def.templatePath())
}

func loadStyle(rt *core.Runtime, loader *Loader, def *Definition) string {
	if def.Style != "" {
		return ExtractBundledCSS(def.Style)
	}
	if loader == nil {
		return ""
	}
	raw, err := loader.Load(def.stylePath())
	if err != nil {
		rt.Logger().Debug("style skipped", "component", def.Tag, "path", def.stylePath(), "error", err)
		return ""
	}
	return ExtractBundledCSS(raw)
}
