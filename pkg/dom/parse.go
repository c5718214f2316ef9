package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML fragment into a detached <div> holding the parsed
// nodes.
func Parse(markup string) (*html.Node, error) {
	container := NewElement("div")
	if err := SetInnerHTML(container, markup); err != nil {
		return nil, err
	}
	return container, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// embedded markup.
func MustParse(markup string) *html.Node {
	n, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return n
}

// SetInnerHTML replaces the children of n with the parsed fragment.
func SetInnerHTML(n *html.Node, markup string) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, child := range nodes {
		n.AppendChild(child)
	}
	return nil
}

// Render serialises the children of n.
func Render(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// OuterHTML serialises n itself.
func OuterHTML(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}
