package testing

import "fmt"

// Tap dispatches a click to the first node matched by finder.
func (t *Tester) Tap(finder Finder) error {
	return t.Dispatch(finder, "click")
}

// Dispatch delivers eventType to the first node matched by finder through
// the registry, then pumps until idle. It fails when nothing matches or no
// handler ran.
func (t *Tester) Dispatch(finder Finder, eventType string) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Dispatch(%s): finder matched no nodes: %s", eventType, finder.Description())
	}
	if !t.registry.Dispatch(result.First(), eventType) {
		return fmt.Errorf("Dispatch(%s): no handler bound: %s", eventType, finder.Description())
	}
	return t.PumpUntilIdle()
}
