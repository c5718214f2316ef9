package persist

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/dom"
	"github.com/go-drift/lite/pkg/frame"
)

func openTestStore(t *testing.T) (*BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lite.db")
	st, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	return st, path
}

func newComponent(t *testing.T) (*core.Component, *frame.Manual) {
	t.Helper()
	sched := frame.NewManual()
	n := 0
	rt := core.NewRuntime(sched, core.WithIDGenerator(func(tag string) string {
		n++
		return fmt.Sprintf("%s-%d", tag, n)
	}))
	c := rt.Register("count-component", dom.MustParse(`<p data-state="count"></p>`))
	return c, sched
}

func pump(t *testing.T, sched *frame.Manual) {
	t.Helper()
	if err := sched.PumpUntilIdle(10); err != nil {
		t.Fatal(err)
	}
}

func TestBoltStoreRoundTrip(t *testing.T) {
	st, _ := openTestStore(t)
	defer st.Close()

	if _, ok, err := st.Load("count-component", "count"); err != nil || ok {
		t.Fatalf("Load on empty store = (_, %v, %v)", ok, err)
	}
	if err := st.Save("count-component", "count", []byte{1, 2}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Save("count-component", "status", []byte{3}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, ok, err := st.Load("count-component", "count")
	if err != nil || !ok {
		t.Fatalf("Load = (_, %v, %v)", ok, err)
	}
	if diff := cmp.Diff([]byte{1, 2}, data); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	keys, err := st.Keys("count-component")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if diff := cmp.Diff([]string{"count", "status"}, keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if _, ok, _ := st.Load("other-component", "count"); ok {
		t.Error("buckets should be per component")
	}
}

func TestDecodeNormalizes(t *testing.T) {
	users := core.List{
		{"id": 1, "name": "User1", "age": 20},
		{"id": 2, "name": "User2", "age": -3},
	}
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", 5, 5},
		{"negative", -7, -7},
		{"string", "Pending", "Pending"},
		{"bool", true, true},
		{"nil", nil, nil},
		{"list", users, users},
		{"mixed slice", []any{1, "a"}, []any{1, "a"}},
		{"map", map[string]any{"a": 1}, map[string]any{"a": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBindRestoresAndSaves(t *testing.T) {
	st, path := openTestStore(t)

	c, sched := newComponent(t)
	count := core.UseState(c, "count", 5)
	users := core.UseState(c, "users", core.List{{"id": 1, "name": "User1"}})
	if err := Bind(c, st, "count", "users"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	pump(t, sched)

	count.Set(7)
	users.Apply(func(core.List) core.ListOp {
		return core.Add{Item: core.Item{"id": 2, "name": "joon"}}
	})
	pump(t, sched)
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	defer st2.Close()

	c2, sched2 := newComponent(t)
	count2 := core.UseState(c2, "count", 5)
	users2 := core.UseState(c2, "users", core.List{})
	if err := Bind(c2, st2, "count", "users"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	pump(t, sched2)

	if got := count2.Get(); got != 7 {
		t.Errorf("restored count = %d, want 7", got)
	}
	want := core.List{{"id": 1, "name": "User1"}, {"id": 2, "name": "joon"}}
	if diff := cmp.Diff(want, users2.Get()); diff != "" {
		t.Errorf("restored users mismatch (-want +got):\n%s", diff)
	}
	if got := dom.Text(dom.Select(c2.Node(), "p")); got != "7" {
		t.Errorf("rendered count = %q, want %q", got, "7")
	}
}

func TestBindSkipsUndecodableValue(t *testing.T) {
	st, _ := openTestStore(t)
	defer st.Close()
	if err := st.Save("count-component", "count", []byte{0xff, 0x00}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c, sched := newComponent(t)
	count := core.UseState(c, "count", 5)
	if err := Bind(c, st, "count"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	pump(t, sched)

	if got := count.Get(); got != 5 {
		t.Errorf("count = %d, want 5", got)
	}
}

func TestBindRestoresEmptyListAsList(t *testing.T) {
	st, _ := openTestStore(t)
	defer st.Close()

	data, err := Encode(core.List{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := st.Save("count-component", "users", data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c, sched := newComponent(t)
	users := core.UseState(c, "users", core.List{{"id": 1}})
	if err := Bind(c, st, "users"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := users.Get(); got == nil || len(got) != 0 {
		t.Fatalf("restored users = %#v, want an empty core.List", got)
	}

	users.Apply(func(core.List) core.ListOp { return core.Add{Item: core.Item{"id": 7}} })
	pump(t, sched)

	got := users.Get()
	if len(got) != 1 || got[0].ID() != "7" {
		t.Errorf("users after Add = %#v, want one item with id 7", got)
	}
}

func TestConform(t *testing.T) {
	tests := []struct {
		name     string
		declared any
		restored any
		want     any
	}{
		{"empty array for list", core.List{}, []any{}, core.List{}},
		{"nil for list", core.List{{"id": 1}}, nil, core.List{}},
		{"items kept", core.List{}, core.List{{"id": 2}}, core.List{{"id": 2}}},
		{"empty array for other key", 0, []any{}, []any{}},
		{"scalar untouched", 0, 5, 5},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, conform(tt.declared, tt.restored)); diff != "" {
			t.Errorf("%s: conform mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}
