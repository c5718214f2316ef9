package dom

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Outline renders the children of root as an indented outline: one element
// per line with sorted attributes, and trimmed non-empty text in quotes.
// Style element contents are omitted.
//
//	<p data-state="count">
//	  "5"
func Outline(root *html.Node) []string {
	return outline(root, false)
}

// VisibleOutline is like Outline but skips hidden elements and their
// subtrees.
func VisibleOutline(root *html.Node) []string {
	return outline(root, true)
}

func outline(root *html.Node, skipHidden bool) []string {
	var lines []string
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				lines = append(lines, fmt.Sprintf("%s%q", indent, text))
			}
			return
		case html.ElementNode:
		default:
			return
		}
		if skipHidden && Hidden(n) {
			return
		}

		attrs := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			attrs = append(attrs, fmt.Sprintf("%s=%q", a.Key, a.Val))
		}
		slices.Sort(attrs)
		line := indent + "<" + n.Data
		if len(attrs) > 0 {
			line += " " + strings.Join(attrs, " ")
		}
		lines = append(lines, line+">")
		if n.Data == "style" {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth+1)
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c, 0)
	}
	return lines
}
