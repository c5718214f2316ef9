package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Hide sets display:none on n, keeping its other inline declarations.
func Hide(n *html.Node) {
	decls := styleWithout(n, "display")
	decls = append(decls, "display: none")
	SetAttr(n, "style", strings.Join(decls, "; "))
}

// Show clears any inline display declaration on n.
func Show(n *html.Node) {
	decls := styleWithout(n, "display")
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", strings.Join(decls, "; "))
}

// SetVisible calls Show or Hide.
func SetVisible(n *html.Node, visible bool) {
	if visible {
		Show(n)
	} else {
		Hide(n)
	}
}

// Hidden reports whether n carries an inline display:none.
func Hidden(n *html.Node) bool {
	style, _ := Attr(n, "style")
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(prop) == "display" && strings.TrimSpace(val) == "none" {
			return true
		}
	}
	return false
}

func styleWithout(n *html.Node, property string) []string {
	style, _ := Attr(n, "style")
	var out []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		prop, _, _ := strings.Cut(decl, ":")
		if strings.TrimSpace(prop) == property {
			continue
		}
		out = append(out, decl)
	}
	return out
}
