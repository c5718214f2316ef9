// Package navigation provides the hash router: route normalization,
// nearest-ancestor matching, nested layout stacks, and re-rendering a
// container from captured layout and view templates.
//
// # Routes and Stacks
//
// A route is a canonical path such as "/play/count". Matching walks up the
// path until a declared route is found, so with routes "/", "/play" and
// "/play/count", the path "/play/count/99" resolves to "/play/count". A path
// with no declared ancestor resolves to [NotFound].
//
// The route stack is every prefix of the matched route, shortest first:
//
//	navigation.BuildRouteStack("/play/count") // ["/play", "/play/count"]
//
// # Markup
//
// Inside the router container, elements marked data-route-layout="/play"
// are layouts for that prefix; a data-route-slot descendant marks where the
// next level goes. Elements marked data-route-view="/play/count" are leaf
// views. Anywhere under the router root, data-route-shared="/play" elements
// are shown only while "/play" is on the current stack.
//
//	router := navigation.New(navigation.Config{
//	    Routes:   []string{"/", "/about", "/play", "/play/count"},
//	    Root:     app.Node(),
//	    Location: navigation.NewMemoryLocation("#/", nil),
//	    OnChange: func(c navigation.Change) { route.Set(c.Route) },
//	})
//	router.Start()
//	router.Navigate("/play/count")
package navigation

import (
	"slices"
	"strings"
)

// NotFound is the route every unmatched path resolves to.
const NotFound = "notfound"

// NormalizeRoute turns a fragment or path into a canonical route: the
// leading "#" is dropped, a leading "/" is forced, and any query string is
// removed. Empty input normalizes to "/".
//
//	NormalizeRoute("#/play/count?foo=bar") // "/play/count"
func NormalizeRoute(hashOrPath string) string {
	raw := strings.TrimPrefix(hashOrPath, "#")
	path := raw
	switch {
	case raw == "":
		path = "/"
	case !strings.HasPrefix(raw, "/"):
		path = "/" + raw
	}
	path, _, _ = strings.Cut(path, "?")
	if path == "" {
		return "/"
	}
	return path
}

// MatchRoute returns the declared route nearest to path: path itself if
// declared, otherwise the longest declared ancestor, otherwise [NotFound].
func MatchRoute(path string, routes []string) string {
	if slices.Contains(routes, path) {
		return path
	}
	segments := splitSegments(path)
	for len(segments) > 0 {
		candidate := "/" + strings.Join(segments, "/")
		if slices.Contains(routes, candidate) {
			return candidate
		}
		segments = segments[:len(segments)-1]
	}
	return NotFound
}

// BuildRouteStack returns every prefix of path from shortest to longest.
// The root path yields ["/"] and [NotFound] yields [NotFound].
func BuildRouteStack(path string) []string {
	if path == NotFound {
		return []string{NotFound}
	}
	segments := splitSegments(path)
	if len(segments) == 0 {
		return []string{"/"}
	}
	stack := make([]string, len(segments))
	for i := range segments {
		stack[i] = "/" + strings.Join(segments[:i+1], "/")
	}
	return stack
}

func splitSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
