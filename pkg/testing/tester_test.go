package testing

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/lite/pkg/component"
	"github.com/go-drift/lite/pkg/core"
)

func counterDefinition() component.Definition {
	return component.Definition{
		Tag:      "count-component",
		Template: `<p id="count" data-state="count"></p><button id="increment" data-on="click:increment">+</button>`,
		Setup: func(s *component.Scope) {
			core.UseState(s.Component, "count", 5)
		},
		Bind: func(in *component.Instance) {
			count := core.StateOf[int](in.Component(), "count")
			in.On("increment", func(component.Event) { count.Set(count.Get() + 1) })
		},
	}
}

func userListDefinition() component.Definition {
	return component.Definition{
		Tag:      "user-list",
		Template: `<ul><li data-repeat="users"><span data-repeat-field="name"></span></li></ul>`,
		Setup: func(s *component.Scope) {
			core.UseState(s.Component, "users", core.List{
				{"id": 1, "name": "a"},
				{"id": 2, "name": "b"},
			})
		},
	}
}

func newCounterTester(t *testing.T) *Tester {
	t.Helper()
	tester := NewTesterWithT(t)
	if err := tester.Define(counterDefinition(), userListDefinition()); err != nil {
		t.Fatalf("Define: %v", err)
	}
	return tester
}

func TestMountHTMLRendersState(t *testing.T) {
	tester := newCounterTester(t)

	mounted, err := tester.MountHTML(`<count-component></count-component>`)
	if err != nil {
		t.Fatalf("MountHTML: %v", err)
	}
	if len(mounted) != 1 {
		t.Fatalf("mounted = %d, want 1", len(mounted))
	}
	if got := tester.Text(ByState("count")); got != "5" {
		t.Errorf("count text = %q, want %q", got, "5")
	}
	if got := mounted[0].Component().ID(); got != "count-component-1" {
		t.Errorf("ID = %q, want deterministic id", got)
	}
	if !tester.Runtime().Idle() {
		t.Error("runtime should be idle after MountHTML")
	}
}

func TestTapDispatchesAndPumps(t *testing.T) {
	tester := newCounterTester(t)
	if _, err := tester.MountHTML(`<count-component></count-component>`); err != nil {
		t.Fatalf("MountHTML: %v", err)
	}

	for range 2 {
		if err := tester.Tap(BySelector("#increment")); err != nil {
			t.Fatalf("Tap: %v", err)
		}
	}
	if got := tester.Text(ByState("count")); got != "7" {
		t.Errorf("count text = %q, want %q", got, "7")
	}

	if err := tester.Tap(BySelector("#count")); err == nil {
		t.Error("Tap on an unbound node should fail")
	}
	if err := tester.Tap(BySelector("#missing")); err == nil {
		t.Error("Tap with no match should fail")
	}
}

func TestInstanceLookup(t *testing.T) {
	tester := newCounterTester(t)
	if _, err := tester.MountHTML(`<count-component></count-component>`); err != nil {
		t.Fatalf("MountHTML: %v", err)
	}
	in, ok := tester.Instance(ByTag("count-component"))
	if !ok {
		t.Fatal("expected an instance on the host")
	}
	if in.Definition().Tag != "count-component" {
		t.Errorf("Tag = %q", in.Definition().Tag)
	}
	if _, ok := tester.Instance(BySelector("#count")); ok {
		t.Error("non-host node should have no instance")
	}
}

func TestCleanupReleasesInstances(t *testing.T) {
	tester := NewTester()
	torn := 0
	def := counterDefinition()
	def.Teardown = func(*component.Instance) { torn++ }
	if err := tester.Define(def); err != nil {
		t.Fatalf("Define: %v", err)
	}
	mounted, err := tester.MountHTML(`<count-component></count-component>`)
	if err != nil {
		t.Fatalf("MountHTML: %v", err)
	}

	tester.Cleanup()

	if torn != 1 {
		t.Errorf("teardown calls = %d, want 1", torn)
	}
	if !mounted[0].Released() {
		t.Error("instance not released")
	}
	if tester.Page().FirstChild != nil {
		t.Error("page not cleared")
	}
}

func TestWithFSLoadsTemplates(t *testing.T) {
	tester := NewTesterWithT(t, WithFS(fstest.MapFS{
		"components/Badge.html": {Data: []byte(`<b data-state="label"></b>`)},
	}))
	err := tester.Define(component.Definition{
		Tag:   "badge-view",
		Dir:   "components",
		Setup: func(s *component.Scope) { core.UseState(s.Component, "label", "new") },
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if _, err := tester.MountHTML(`<badge-view></badge-view>`); err != nil {
		t.Fatalf("MountHTML: %v", err)
	}
	if got := tester.Text(ByTag("b")); got != "new" {
		t.Errorf("label = %q, want %q", got, "new")
	}
}

func TestFindersOverLists(t *testing.T) {
	tester := newCounterTester(t)
	if _, err := tester.MountHTML(`<user-list></user-list>`); err != nil {
		t.Fatalf("MountHTML: %v", err)
	}

	if n := tester.Find(BySelector("li")).Count(); n != 3 {
		t.Errorf("li count = %d, want 3 (template plus two items)", n)
	}
	if n := tester.Find(Visible(BySelector("li"))).Count(); n != 2 {
		t.Errorf("visible li count = %d, want 2", n)
	}
	items := tester.Find(ByRepeatItem("users", ""))
	if diff := cmp.Diff([]string{"a", "b"}, items.Texts()); diff != "" {
		t.Errorf("item texts mismatch (-want +got):\n%s", diff)
	}
	if got := tester.Text(ByRepeatItem("users", "2")); got != "b" {
		t.Errorf("item 2 text = %q, want %q", got, "b")
	}
	if n := tester.Find(ByText("b")).Count(); n != 1 {
		t.Errorf("ByText(\"b\") matched %d, want 1", n)
	}
	within := tester.Find(Descendant(ByTag("user-list"), ByTag("span")))
	if within.Count() != 3 {
		t.Errorf("Descendant matched %d spans, want 3", within.Count())
	}
	if !tester.Find(ByTextContaining("a")).Exists() {
		t.Error("ByTextContaining should match")
	}
}

func TestFinderResultPanics(t *testing.T) {
	tester := NewTesterWithT(t)
	result := tester.Find(BySelector("p"))

	defer func() {
		if recover() == nil {
			t.Error("First on an empty result should panic")
		}
	}()
	if result.FirstOrNil() != nil {
		t.Error("FirstOrNil should be nil")
	}
	result.First()
}
