package core

import "slices"

// updateQueue holds pending writes per root and key, in insertion order.
type updateQueue struct {
	roots  []*Component
	byRoot map[*Component]*rootUpdates
}

type rootUpdates struct {
	keys    []string
	entries map[string][]any
}

func newUpdateQueue() *updateQueue {
	return &updateQueue{byRoot: make(map[*Component]*rootUpdates)}
}

// put records a write. A plain value replaces everything pending for the
// key; list changes queue behind what is already there.
func (q *updateQueue) put(root *Component, key string, value any) {
	ru, ok := q.byRoot[root]
	if !ok {
		ru = &rootUpdates{entries: make(map[string][]any)}
		q.byRoot[root] = ru
		q.roots = append(q.roots, root)
	}
	pending, seen := ru.entries[key]
	if !seen {
		ru.keys = append(ru.keys, key)
	}
	if _, isChange := value.(ListChange); isChange {
		ru.entries[key] = append(pending, value)
		return
	}
	ru.entries[key] = []any{value}
}

func (q *updateQueue) drop(root *Component) {
	if _, ok := q.byRoot[root]; !ok {
		return
	}
	delete(q.byRoot, root)
	if i := slices.Index(q.roots, root); i >= 0 {
		q.roots = slices.Delete(q.roots, i, i+1)
	}
}

// effectQueue holds pending effect triggers per record and key.
type effectQueue struct {
	records  []*Record
	byRecord map[*Record]*recordEffects
}

type recordEffects struct {
	keys    []string
	entries map[string]effectTrigger
}

type effectTrigger struct {
	value any
	force bool
}

func newEffectQueue() *effectQueue {
	return &effectQueue{byRecord: make(map[*Record]*recordEffects)}
}

// put records a trigger. The latest value wins; force sticks until flushed.
func (q *effectQueue) put(rec *Record, key string, value any, force bool) {
	re, ok := q.byRecord[rec]
	if !ok {
		re = &recordEffects{entries: make(map[string]effectTrigger)}
		q.byRecord[rec] = re
		q.records = append(q.records, rec)
	}
	existing, seen := re.entries[key]
	if !seen {
		re.keys = append(re.keys, key)
	}
	re.entries[key] = effectTrigger{value: value, force: force || existing.force}
}

func (q *effectQueue) drop(rec *Record) {
	if _, ok := q.byRecord[rec]; !ok {
		return
	}
	delete(q.byRecord, rec)
	if i := slices.Index(q.records, rec); i >= 0 {
		q.records = slices.Delete(q.records, i, i+1)
	}
}
