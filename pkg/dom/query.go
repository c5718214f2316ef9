package dom

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	selectorMu    sync.Mutex
	selectorCache = make(map[string]cascadia.Matcher)
)

// compile parses a selector group ("a, b") once and caches it. A selector
// that does not parse is logged and yields nil, which callers treat as
// "nothing matches".
func compile(selector string) cascadia.Matcher {
	selectorMu.Lock()
	defer selectorMu.Unlock()
	if sel, ok := selectorCache[selector]; ok {
		return sel
	}
	var sel cascadia.Matcher
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		slog.Default().Warn("invalid selector", "selector", selector, "error", err)
	} else {
		sel = group
	}
	selectorCache[selector] = sel
	return sel
}

// Select returns the first descendant of root matching a CSS selector.
func Select(root *html.Node, selector string) *html.Node {
	sel := compile(selector)
	if root == nil || sel == nil {
		return nil
	}
	return cascadia.Query(root, sel)
}

// SelectAll returns every descendant of root matching a CSS selector, in
// document order.
func SelectAll(root *html.Node, selector string) []*html.Node {
	sel := compile(selector)
	if root == nil || sel == nil {
		return nil
	}
	return cascadia.QueryAll(root, sel)
}

// Query returns the first descendant whose attribute equals value.
func Query(root *html.Node, attr, value string) *html.Node {
	return Select(root, attrSelector(attr, value))
}

// QueryAll returns every descendant whose attribute equals value.
func QueryAll(root *html.Node, attr, value string) []*html.Node {
	return SelectAll(root, attrSelector(attr, value))
}

// QueryAttr returns the first descendant carrying attr.
func QueryAttr(root *html.Node, attr string) *html.Node {
	return Select(root, "["+attr+"]")
}

// QueryAllAttr returns every descendant carrying attr.
func QueryAllAttr(root *html.Node, attr string) []*html.Node {
	return SelectAll(root, "["+attr+"]")
}

func attrSelector(attr, value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return "[" + attr + `="` + r.Replace(value) + `"]`
}
