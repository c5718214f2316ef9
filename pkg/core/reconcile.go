package core

import (
	"slices"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/dom"
)

// QueueDOMUpdate schedules value to be applied to root for key. Writes to
// the same (root, key) within one frame coalesce to the last plain value;
// [ListChange] payloads are kept and applied one by one in arrival order.
// Exactly one flush is requested per frame.
func (rt *Runtime) QueueDOMUpdate(root *Component, key string, value any) {
	if root == nil || root.released {
		return
	}
	rt.updates.put(root, key, value)
	if !rt.updateScheduled {
		rt.updateScheduled = true
		rt.sched.RequestFrame(rt.flushUpdates)
	}
}

func (rt *Runtime) flushUpdates() {
	q := rt.updates
	rt.updates = newUpdateQueue()
	rt.updateScheduled = false

	for _, root := range q.roots {
		if root.released {
			continue
		}
		ru := q.byRoot[root]
		for _, key := range ru.keys {
			for _, value := range ru.entries[key] {
				rt.apply(root, key, value)
			}
		}
		for _, child := range dom.QueryAllAttr(root.node, dom.AttrRoot) {
			dom.SetAttr(child, dom.AttrParent, root.ID())
		}
	}
}

// apply reconciles one pending value against root's tree.
func (rt *Runtime) apply(root *Component, key string, value any) {
	if change, ok := value.(ListChange); ok {
		rt.applyListChange(root, key, change)
		return
	}

	text := textOf(value)
	for _, n := range dom.QueryAll(root.node, dom.AttrState, key) {
		dom.SetText(n, text)
	}

	for _, group := range dom.QueryAll(root.node, dom.AttrCondition, key) {
		for _, c := range dom.QueryAllAttr(group, dom.AttrConditionCase) {
			want, _ := dom.Attr(c, dom.AttrConditionCase)
			dom.SetVisible(c, want == text)
		}
	}

	if list, ok := asList(value); ok {
		rt.syncList(root, key, list)
	}
}

// repeatContext caches the rendered nodes of one list, scoped to a root
// and key.
type repeatContext struct {
	template *html.Node
	parent   *html.Node
	items    map[string]*html.Node
}

// repeatContext returns the cache for (root, key), building it from the
// tree on first use. Returns nil when root has no template for key.
func (rt *Runtime) repeatContext(root *Component, key string) *repeatContext {
	byKey := rt.repeats[root]
	if byKey == nil {
		byKey = make(map[string]*repeatContext)
		rt.repeats[root] = byKey
	}

	ctx := byKey[key]
	if ctx != nil && (!dom.Attached(ctx.template, root.node) || ctx.template.Parent != ctx.parent) {
		// The template was replaced underneath us, e.g. by a re-render of
		// the surrounding markup.
		ctx = nil
	}
	if ctx == nil {
		template := dom.Query(root.node, dom.AttrRepeat, key)
		if template == nil || template.Parent == nil {
			rt.logger.Debug("no repeat template", "component", root.tag, "key", key)
			delete(byKey, key)
			return nil
		}
		ctx = &repeatContext{
			template: template,
			parent:   template.Parent,
			items:    make(map[string]*html.Node),
		}
		for _, n := range dom.QueryAll(ctx.parent, dom.AttrRepeatItem, key) {
			if id, ok := dom.Attr(n, dom.AttrID); ok {
				ctx.items[id] = n
			}
		}
		byKey[key] = ctx
	}

	for id, n := range ctx.items {
		if !dom.Attached(n, ctx.parent) {
			delete(ctx.items, id)
		}
	}

	if v, _ := dom.Attr(ctx.template, dom.AttrRepeatTmpl); v == "" {
		dom.SetAttr(ctx.template, dom.AttrRepeatTmpl, "true")
		dom.Hide(ctx.template)
	}
	return ctx
}

// syncList reconciles every rendered item of key against list: nodes are
// reused by id and moved into list order after the template, unseen ids
// get a fresh clone, and ids no longer present are removed.
func (rt *Runtime) syncList(root *Component, key string, list List) {
	ctx := rt.repeatContext(root, key)
	if ctx == nil {
		return
	}

	rendered := make(map[string]*html.Node)
	for _, n := range dom.QueryAll(ctx.parent, dom.AttrRepeatItem, key) {
		if id, ok := dom.Attr(n, dom.AttrID); ok {
			rendered[id] = n
		}
	}
	clear(ctx.items)

	anchor := ctx.template
	for _, item := range list {
		id := item.ID()
		n, ok := rendered[id]
		if !ok {
			n = stampItem(ctx.template, key, id)
		}
		if next := anchor.NextSibling; next != n {
			dom.InsertBefore(ctx.parent, n, next)
		}
		anchor = n

		populate(n, item, nil)
		ctx.items[id] = n
		delete(rendered, id)
	}

	for _, n := range rendered {
		dom.Remove(n)
	}
}

func (rt *Runtime) applyListChange(root *Component, key string, change ListChange) {
	ctx := rt.repeatContext(root, key)
	if ctx == nil {
		return
	}

	switch change := change.(type) {
	case ListAdd:
		if change.Item == nil {
			return
		}
		id := change.Item.ID()
		n, ok := ctx.items[id]
		if !ok {
			n = stampItem(ctx.template, key, id)
			dom.Append(ctx.parent, n)
			ctx.items[id] = n
		}
		populate(n, change.Item, nil)

	case ListRemove:
		for _, id := range change.IDs {
			if n, ok := ctx.items[id]; ok {
				dom.Remove(n)
				delete(ctx.items, id)
			}
		}

	case ListUpdate:
		for _, p := range change.Items {
			n, ok := ctx.items[p.ID]
			if !ok || p.Data == nil {
				continue
			}
			populate(n, p.Data, p.Fields)
		}
	}
}

// stampItem clones the template into a visible item node for id.
func stampItem(template *html.Node, key, id string) *html.Node {
	n := dom.Clone(template)
	dom.RemoveAttr(n, dom.AttrRepeat)
	dom.RemoveAttr(n, dom.AttrRepeatTmpl)
	dom.Show(n)
	dom.SetAttr(n, dom.AttrRepeatItem, key)
	dom.SetAttr(n, dom.AttrID, id)
	return n
}

// populate writes item fields into the field-bound elements of n. With no
// fields given, every key of item is written.
func populate(n *html.Node, item Item, fields []string) {
	if len(fields) == 0 {
		fields = make([]string, 0, len(item))
		for field := range item {
			fields = append(fields, field)
		}
		slices.Sort(fields)
	}
	for _, field := range fields {
		if target := dom.Query(n, dom.AttrRepeatField, field); target != nil {
			dom.SetText(target, textOf(item[field]))
		}
	}
}
