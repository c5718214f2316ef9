package testing

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeT struct {
	fatals []string
	errors []string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}
func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func TestCaptureSnapshotOutline(t *testing.T) {
	tester := newCounterTester(t)
	if _, err := tester.MountHTML(`<count-component></count-component>`); err != nil {
		t.Fatalf("MountHTML: %v", err)
	}

	want := []string{
		`<count-component>`,
		`  <p data-state="count" id="count">`,
		`    "5"`,
		`  <button data-on="click:increment" id="increment">`,
		`    "+"`,
	}
	if diff := cmp.Diff(want, tester.CaptureSnapshot().Lines); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	tester := newCounterTester(t)
	if _, err := tester.MountHTML(`<count-component></count-component>`); err != nil {
		t.Fatalf("MountHTML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nested", "counter.snapshot")

	missing := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(missing, path)
	if len(missing.fatals) != 1 {
		t.Errorf("missing file: fatals = %v", missing.fatals)
	}

	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}
	same := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(same, path)
	if len(same.fatals)+len(same.errors) != 0 {
		t.Errorf("matching snapshot reported %v %v", same.fatals, same.errors)
	}

	if err := tester.Tap(BySelector("#increment")); err != nil {
		t.Fatalf("Tap: %v", err)
	}
	changed := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(changed, path)
	if len(changed.errors) != 1 {
		t.Errorf("changed snapshot: errors = %v", changed.errors)
	}
}
