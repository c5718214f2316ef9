package core

import (
	"fmt"
	"maps"
	"slices"
)

// Item is one element of a list state. Its "id" field identifies the
// rendered node.
type Item map[string]any

// ID returns the item's identity in string form.
func (it Item) ID() string {
	return idString(it["id"])
}

// List is the value type of list state.
type List []Item

// ListOp is a list operation returned from [State.Apply] or
// [Component.Update]. It is one of [Add], [Remove] or [Patch].
type ListOp interface {
	listOp()
}

// Add appends Item.
type Add struct {
	Item Item
}

// Remove drops every item for which Match returns true. When Match is nil,
// the item whose id equals ID is dropped.
type Remove struct {
	ID    any
	Match func(Item) bool
}

// Patch shallow-merges fields into every eligible item. Eligibility is
// Match, or id equality with ID when Match is nil. The merged fields come
// from With when set, else Fields.
type Patch struct {
	ID     any
	Match  func(Item) bool
	Fields Item
	With   func(Item) Item
}

func (Add) listOp()    {}
func (Remove) listOp() {}
func (Patch) listOp()  {}

// ListChange is the reconciler payload produced by a list operation. It is
// one of [ListAdd], [ListRemove] or [ListUpdate].
type ListChange interface {
	listChange()
}

// ListAdd renders one new item.
type ListAdd struct {
	Item Item
}

// ListRemove deletes the rendered items with the given ids.
type ListRemove struct {
	IDs []string
}

// ListUpdate patches fields of rendered items in place.
type ListUpdate struct {
	Items []ItemPatch
}

// ItemPatch lists the fields of one item that changed.
type ItemPatch struct {
	ID     string
	Fields []string
	Data   Item
}

func (ListAdd) listChange()    {}
func (ListRemove) listChange() {}
func (ListUpdate) listChange() {}

// resolveListOp applies op to prev. It returns the new list, the payload
// for the reconciler, and false when prev is not a list.
func resolveListOp(prev any, op ListOp) (any, ListChange, bool) {
	list, ok := asList(prev)
	if !ok {
		return prev, nil, false
	}

	switch op := op.(type) {
	case Add:
		next := make(List, 0, len(list)+1)
		next = append(next, list...)
		next = append(next, op.Item)
		return next, ListAdd{Item: op.Item}, true

	case Remove:
		match := op.Match
		if match == nil {
			match = matchID(op.ID)
		}
		next := make(List, 0, len(list))
		ids := []string{}
		for _, item := range list {
			if match(item) {
				ids = append(ids, item.ID())
				continue
			}
			next = append(next, item)
		}
		return next, ListRemove{IDs: ids}, true

	case Patch:
		match := op.Match
		if match == nil {
			match = matchID(op.ID)
		}
		next := make(List, len(list))
		var patches []ItemPatch
		for i, item := range list {
			if !match(item) {
				next[i] = item
				continue
			}
			changes := op.Fields
			if op.With != nil {
				changes = op.With(item)
			}
			merged := maps.Clone(item)
			if merged == nil {
				merged = Item{}
			}
			maps.Copy(merged, changes)

			var fields []string
			for field, v := range merged {
				old, had := item[field]
				if !had || !sameValue(old, v) {
					fields = append(fields, field)
				}
			}
			if len(fields) > 0 {
				slices.Sort(fields)
				patches = append(patches, ItemPatch{ID: item.ID(), Fields: fields, Data: merged})
			}
			next[i] = merged
		}
		return next, ListUpdate{Items: patches}, true
	}
	return prev, nil, false
}

func matchID(id any) func(Item) bool {
	if id == nil {
		return func(Item) bool { return false }
	}
	want := idString(id)
	return func(item Item) bool { return item.ID() == want }
}

func asList(v any) (List, bool) {
	switch v := v.(type) {
	case List:
		return v, true
	case []Item:
		return List(v), true
	case []map[string]any:
		list := make(List, len(v))
		for i, m := range v {
			list[i] = Item(m)
		}
		return list, true
	}
	return nil, false
}

func idString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
