package testing

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/dom"
)

// Finder locates nodes in the page.
type Finder interface {
	// Evaluate returns all matching element nodes under root, root
	// excluded, in document order.
	Evaluate(root *html.Node) []*html.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*html.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *html.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *html.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *html.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in document order.
func (r FinderResult) All() []*html.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Texts returns the text content of every match.
func (r FinderResult) Texts() []string {
	out := make([]string, len(r.nodes))
	for i, n := range r.nodes {
		out[i] = dom.Text(n)
	}
	return out
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

type selectorFinder struct {
	selector string
}

func (f *selectorFinder) Evaluate(root *html.Node) []*html.Node {
	return dom.SelectAll(root, f.selector)
}

func (f *selectorFinder) Description() string {
	return fmt.Sprintf("BySelector(%q)", f.selector)
}

// BySelector returns a finder that matches a CSS selector.
func BySelector(selector string) Finder {
	return &selectorFinder{selector: selector}
}

// ByState returns a finder that matches text bindings of a state key.
func ByState(key string) Finder {
	return &predicateFinder{
		fn: func(n *html.Node) bool {
			v, ok := dom.Attr(n, dom.AttrState)
			return ok && v == key
		},
		desc: fmt.Sprintf("ByState(%q)", key),
	}
}

// ByRepeatItem returns a finder that matches rendered items of a list key.
// An empty id matches every item.
func ByRepeatItem(key, id string) Finder {
	return &predicateFinder{
		fn: func(n *html.Node) bool {
			if v, ok := dom.Attr(n, dom.AttrRepeatItem); !ok || v != key {
				return false
			}
			got, _ := dom.Attr(n, dom.AttrID)
			return id == "" || got == id
		},
		desc: fmt.Sprintf("ByRepeatItem(%q, %q)", key, id),
	}
}

// ByTag returns a finder that matches elements by tag name.
func ByTag(tag string) Finder {
	tag = strings.ToLower(tag)
	return &predicateFinder{
		fn:   func(n *html.Node) bool { return n.Data == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

// textFinder matches elements by the exact text of their own text children.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *html.Node) []*html.Node {
	return collectMatches(root, func(n *html.Node) bool {
		return ownText(n) == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches elements whose direct text children
// read exactly text. Hidden elements match too.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// ByTextContaining returns a finder that matches elements whose direct text
// children contain substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(n *html.Node) bool {
			return strings.Contains(ownText(n), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// Visible narrows inner to matches that are not hidden themselves or
// through an ancestor below the search root.
func Visible(inner Finder) Finder {
	return &visibleFinder{inner: inner}
}

type visibleFinder struct {
	inner Finder
}

func (f *visibleFinder) Evaluate(root *html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range f.inner.Evaluate(root) {
		if visibleWithin(n, root) {
			out = append(out, n)
		}
	}
	return out
}

func (f *visibleFinder) Description() string {
	return fmt.Sprintf("Visible(%s)", f.inner.Description())
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*html.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *html.Node) []*html.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(*html.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *html.Node) []*html.Node {
	var results []*html.Node
	seen := make(map[*html.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, match := range f.matching.Evaluate(ancestor) {
			if !seen[match] {
				seen[match] = true
				results = append(results, match)
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// --- Internal ---

func collectMatches(root *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && predicate(c) {
				results = append(results, c)
			}
			walk(c)
		}
	}
	walk(root)
	return results
}

func ownText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func visibleWithin(n, root *html.Node) bool {
	for p := n; p != nil && p != root; p = p.Parent {
		if dom.Hidden(p) {
			return false
		}
	}
	return true
}
