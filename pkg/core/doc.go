// Package core provides the reactive state store, the two batched
// schedulers, the keyed-list reconciler and the component registry.
//
// A [Runtime] is created once at startup and handed to every component. It
// owns the process-wide tables: the update queue, the effect queue, the
// registry of records, and the per-root repeat caches.
//
// # Components and Records
//
// A [Component] is a render root: a live *html.Node plus the [Record] that
// drives it. A record holds the state table and effect subscriptions. One
// record can drive several roots; [Runtime.ConnectDB] moves a root onto
// another component's record so that a nested component shares its
// ancestor's state.
//
// # State
//
// State keys are declared with [UseState], which returns typed accessors:
//
//	count := core.UseState(c, "count", 5)
//	count.Set(count.Get() + 1)
//
// List state holds a [List] and accepts list operations that reconcile only
// the affected item nodes:
//
//	users := core.UseState(c, "users", core.List{})
//	users.Apply(func(core.List) core.ListOp {
//	    return core.Add{Item: core.Item{"id": 4, "name": "joon"}}
//	})
//
// # Scheduling
//
// Writes are coalesced per (root, key) and applied on the next frame of the
// runtime's [frame.Scheduler]. Effects registered with [UseEffect] are
// coalesced per (record, key) and run on their own frame request, after the
// value they observe has been stored.
//
// # Markup
//
// The reconciler touches only marked elements: data-state text bindings,
// data-condition groups with data-condition-case children, and data-repeat
// list templates with data-repeat-field bindings. Everything else in the
// tree is left alone.
//
// The Runtime is not safe for concurrent use. Drive it from the goroutine
// that runs the scheduler's frames.
package core
