package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testRoutes = []string{"/", "/about", "/play", "/play/count"}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"#", "/"},
		{"#/", "/"},
		{"#/play", "/play"},
		{"#play/count", "/play/count"},
		{"/about?tab=2", "/about"},
		{"#/play/count?foo=bar", "/play/count"},
		{"?x=1", "/"},
		{"##/x", "/#/x"},
	}
	for _, tt := range tests {
		if got := NormalizeRoute(tt.in); got != tt.want {
			t.Errorf("NormalizeRoute(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/", "/"},
		{"/about", "/about"},
		{"/play/count", "/play/count"},
		{"/play/count/99", "/play/count"},
		{"/play/other", "/play"},
		{"/unknown", NotFound},
		{"/unknown/deeper", NotFound},
	}
	for _, tt := range tests {
		if got := MatchRoute(tt.path, testRoutes); got != tt.want {
			t.Errorf("MatchRoute(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMatchRouteWithoutRoot(t *testing.T) {
	// "/" is only ever an exact match, never an ancestor.
	if got := MatchRoute("/missing", []string{"/", "/a"}); got != NotFound {
		t.Errorf("MatchRoute = %q, want %q", got, NotFound)
	}
	if got := MatchRoute("/", []string{"/a"}); got != NotFound {
		t.Errorf("MatchRoute(\"/\") = %q, want %q", got, NotFound)
	}
}

func TestBuildRouteStack(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"/"}},
		{"/about", []string{"/about"}},
		{"/play/count", []string{"/play", "/play/count"}},
		{"/a/b/c", []string{"/a", "/a/b", "/a/b/c"}},
		{NotFound, []string{NotFound}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, BuildRouteStack(tt.path)); diff != "" {
			t.Errorf("BuildRouteStack(%q) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}
