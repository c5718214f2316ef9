// Package testing provides a component testing harness for lite.
//
// # Quick Start
//
// Create a tester, define components, mount markup, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := litetest.NewTesterWithT(t)
//	    tester.Define(counterDefinition)
//	    tester.MountHTML(`<count-component></count-component>`)
//
//	    // Find elements
//	    count := tester.Find(litetest.ByState("count")).First()
//
//	    // Simulate events
//	    tester.Tap(litetest.BySelector("#increment"))
//	    tester.PumpUntilIdle()
//
//	    // Assert state
//	    if !tester.Find(litetest.ByText("6")).Exists() {
//	        t.Error("expected count 6")
//	    }
//	}
//
// Frames never run on their own: the tester drives a [frame.Manual]
// scheduler, so every update and effect flush happens inside Pump.
//
// # Snapshot Testing
//
// Capture and compare the page outline against a golden file:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/counter.snapshot")
//
// Update snapshots with:
//
//	LITE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import litetest "github.com/go-drift/lite/pkg/testing"
package testing
