package component

import (
	goerrors "errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/dom"
	"github.com/go-drift/lite/pkg/errors"
)

// Registry maps tags to definitions and tracks mounted instances by host.
type Registry struct {
	rt        *core.Runtime
	loader    *Loader
	defs      map[string]*Definition
	instances map[*html.Node]*Instance
	order     []*Instance
}

// NewRegistry returns an empty registry. loader may be nil when every
// definition carries inline markup.
func NewRegistry(rt *core.Runtime, loader *Loader) *Registry {
	return &Registry{
		rt:        rt,
		loader:    loader,
		defs:      make(map[string]*Definition),
		instances: make(map[*html.Node]*Instance),
	}
}

// Runtime returns the runtime instances are registered with.
func (r *Registry) Runtime() *core.Runtime { return r.rt }

// Define registers def under its tag. Tags are case-insensitive and must
// contain a dash.
func (r *Registry) Define(def Definition) error {
	tag := strings.ToLower(def.Tag)
	if !strings.Contains(tag, "-") {
		return &errors.LiteError{
			Op:        "component.Define",
			Kind:      errors.KindInit,
			Component: def.Tag,
			Err:       fmt.Errorf("tag %q must contain a dash", def.Tag),
		}
	}
	if _, ok := r.defs[tag]; ok {
		return &errors.LiteError{
			Op:        "component.Define",
			Kind:      errors.KindInit,
			Component: def.Tag,
			Err:       fmt.Errorf("tag %q already defined", def.Tag),
		}
	}
	def.Tag = tag
	r.defs[tag] = &def
	return nil
}

// Definition returns the definition registered for tag.
func (r *Registry) Definition(tag string) (*Definition, bool) {
	def, ok := r.defs[strings.ToLower(tag)]
	return def, ok
}

// Instance returns the instance mounted on host.
func (r *Registry) Instance(host *html.Node) (*Instance, bool) {
	in, ok := r.instances[host]
	return in, ok
}

// Instances returns the live instances in mount order.
func (r *Registry) Instances() []*Instance {
	return slices.Clone(r.order)
}

// Mount mounts host according to its tag, then mounts any defined hosts
// inside the inserted template.
func (r *Registry) Mount(host *html.Node) (*Instance, error) {
	if in, ok := r.instances[host]; ok {
		return in, nil
	}
	def, ok := r.Definition(host.Data)
	if !ok {
		return nil, &errors.LiteError{
			Op:        "component.Mount",
			Kind:      errors.KindInit,
			Component: host.Data,
			Err:       fmt.Errorf("no definition for <%s>", host.Data),
		}
	}

	in, err := mount(r.rt, r.loader, def, host, r)
	r.instances[host] = in
	r.order = append(r.order, in)
	if err != nil {
		return in, err
	}
	if _, err := r.MountTree(host); err != nil {
		return in, err
	}
	return in, nil
}

// MountTree mounts every defined, not yet mounted host under root in
// document order, root excluded. Failures are reported to the error
// handler and joined into the returned error; mounting continues past
// them.
func (r *Registry) MountTree(root *html.Node) ([]*Instance, error) {
	selector := r.selector()
	if selector == "" {
		return nil, nil
	}
	var (
		mounted []*Instance
		errs    []error
	)
	for _, host := range dom.SelectAll(root, selector) {
		if _, ok := r.instances[host]; ok || !dom.Attached(host, root) {
			continue
		}
		in, err := r.Mount(host)
		if in != nil {
			mounted = append(mounted, in)
		}
		if err != nil {
			// Nested failures were reported by the inner MountTree.
			if le, ok := err.(*errors.LiteError); ok {
				errors.Report(le)
			}
			errs = append(errs, err)
		}
	}
	return mounted, goerrors.Join(errs...)
}

// Sweep releases every instance whose host is no longer under root and
// returns how many were released. root should be the top of the page.
func (r *Registry) Sweep(root *html.Node) int {
	var kept []*Instance
	released := 0
	for _, in := range r.order {
		if dom.Attached(in.host, root) {
			kept = append(kept, in)
			continue
		}
		in.Release()
		delete(r.instances, in.host)
		released++
	}
	r.order = kept
	return released
}

// Dispatch delivers an event to target, trying the innermost mounted
// ancestor first. It reports whether a handler ran.
func (r *Registry) Dispatch(target *html.Node, eventType string) bool {
	for n := target; n != nil; n = n.Parent {
		in, ok := r.instances[n]
		if !ok {
			continue
		}
		if in.Dispatch(target, eventType) {
			return true
		}
	}
	return false
}

func (r *Registry) selector() string {
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return strings.Join(tags, ", ")
}
