package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQueryAllDescendantsOnly(t *testing.T) {
	root := MustParse(`<p data-state="count">1</p><div><span data-state="count">2</span><b data-state="other">x</b></div>`)

	got := QueryAll(root, AttrState, "count")
	if len(got) != 2 {
		t.Fatalf("QueryAll matched %d nodes, want 2", len(got))
	}
	if Text(got[0]) != "1" || Text(got[1]) != "2" {
		t.Errorf("unexpected match order: %q, %q", Text(got[0]), Text(got[1]))
	}

	// The root itself never matches.
	SetAttr(root, AttrState, "count")
	if n := len(QueryAll(root, AttrState, "count")); n != 2 {
		t.Errorf("QueryAll included root: %d matches", n)
	}
}

func TestQueryQuotedValue(t *testing.T) {
	root := MustParse(`<p data-state='say "hi"'>x</p>`)
	if Query(root, AttrState, `say "hi"`) == nil {
		t.Error("expected quoted attribute value to match")
	}
}

func TestSetTextReplacesChildren(t *testing.T) {
	root := MustParse(`<p id="a"><b>old</b> text</p>`)
	p := Select(root, "#a")
	SetText(p, "new")
	if got := Render(root); got != `<p id="a">new</p>` {
		t.Errorf("Render = %q", got)
	}
}

func TestShowHideKeepsOtherDeclarations(t *testing.T) {
	root := MustParse(`<p style="color: red">x</p>`)
	p := root.FirstChild

	Hide(p)
	if !Hidden(p) {
		t.Fatal("expected node to be hidden")
	}
	style, _ := Attr(p, "style")
	if diff := cmp.Diff("color: red; display: none", style); diff != "" {
		t.Errorf("style mismatch (-want +got):\n%s", diff)
	}

	Show(p)
	if Hidden(p) {
		t.Error("expected node to be visible")
	}
	style, _ = Attr(p, "style")
	if style != "color: red" {
		t.Errorf("style = %q, want %q", style, "color: red")
	}

	bare := NewElement("span")
	Hide(bare)
	Show(bare)
	if HasAttr(bare, "style") {
		t.Error("Show should drop an empty style attribute")
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	root := MustParse(`<li data-id="1"><span data-repeat-field="name">a</span></li>`)
	li := root.FirstChild
	c := Clone(li)

	if c.Parent != nil {
		t.Error("clone should be detached")
	}
	SetAttr(c, AttrID, "2")
	SetText(Query(c, AttrRepeatField, "name"), "b")

	if v, _ := Attr(li, AttrID); v != "1" {
		t.Errorf("original id changed to %q", v)
	}
	if got := Text(li); got != "a" {
		t.Errorf("original text changed to %q", got)
	}
}

func TestInsertBeforeMovesAttachedNode(t *testing.T) {
	root := MustParse(`<ul><li id="a"></li><li id="b"></li><li id="c"></li></ul>`)
	ul := root.FirstChild
	a, c := Select(root, "#a"), Select(root, "#c")

	InsertBefore(ul, c, a)
	if got := Render(root); got != `<ul><li id="c"></li><li id="a"></li><li id="b"></li></ul>` {
		t.Errorf("Render = %q", got)
	}

	Append(ul, c)
	if got := Render(root); got != `<ul><li id="a"></li><li id="b"></li><li id="c"></li></ul>` {
		t.Errorf("Render = %q", got)
	}
}

func TestAttached(t *testing.T) {
	root := MustParse(`<div><p id="x"></p></div>`)
	p := Select(root, "#x")
	if !Attached(p, root) {
		t.Error("expected attached")
	}
	Remove(p)
	if Attached(p, root) {
		t.Error("expected detached after Remove")
	}
	Remove(p)
}

func TestRemoveAttr(t *testing.T) {
	n := NewElement("div")
	SetAttr(n, AttrRepeat, "users")
	SetAttr(n, AttrID, "1")
	SetAttr(n, AttrRepeat, "users2")
	if v, _ := Attr(n, AttrRepeat); v != "users2" {
		t.Errorf("SetAttr did not replace: %q", v)
	}
	RemoveAttr(n, AttrRepeat)
	if HasAttr(n, AttrRepeat) || !HasAttr(n, AttrID) {
		t.Errorf("unexpected attrs after RemoveAttr: %v", n.Attr)
	}
}

func TestOutline(t *testing.T) {
	root := MustParse(`<div id="a" class="x"><style>p{}</style><p>  hi </p><b style="display: none">gone</b></div>`)

	want := []string{
		`<div class="x" id="a">`,
		`  <style>`,
		`  <p>`,
		`    "hi"`,
		`  <b style="display: none">`,
		`    "gone"`,
	}
	if diff := cmp.Diff(want, Outline(root)); diff != "" {
		t.Errorf("Outline mismatch (-want +got):\n%s", diff)
	}

	visible := VisibleOutline(root)
	if diff := cmp.Diff(want[:4], visible); diff != "" {
		t.Errorf("VisibleOutline mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAllSelectorGroup(t *testing.T) {
	root := MustParse(`<count-panel></count-panel><div><badge-view></badge-view></div><other-view></other-view>`)

	got := SelectAll(root, "badge-view, count-panel")
	var tags []string
	for _, n := range got {
		tags = append(tags, n.Data)
	}
	if diff := cmp.Diff([]string{"count-panel", "badge-view"}, tags); diff != "" {
		t.Errorf("group match mismatch (-want +got):\n%s", diff)
	}
	if n := Select(root, "other-view,badge-view"); n == nil || n.Data != "badge-view" {
		t.Errorf("Select returned %v, want the first match in document order", n)
	}
}

func TestSelectInvalidSelectorMatchesNothing(t *testing.T) {
	root := MustParse(`<p>x</p>`)
	if got := SelectAll(root, "p,,"); got != nil {
		t.Errorf("invalid selector matched %d nodes", len(got))
	}
	if Select(root, "[") != nil {
		t.Error("invalid selector should not match")
	}
}
