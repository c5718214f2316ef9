package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/lite/pkg/frame"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "counter")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:          dir,
		AppName:       "counter",
		Routes:        DefaultRoutes,
		Initial:       "/",
		FrameInterval: frame.DefaultInterval,
		LogLevel:      slog.LevelInfo,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAppNameFromModule(t *testing.T) {
	tests := []struct {
		module string
		want   string
	}{
		{"example.com/acme/shop", "shop"},
		{"example.com/acme/shop/v2", "shop"},
		{"tool", "tool"},
	}
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "go.mod", "module "+tt.module+"\n\ngo 1.24\n")

			got, err := Resolve(dir)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got.AppName != tt.want {
				t.Errorf("AppName = %q, want %q", got.AppName, tt.want)
			}
			if got.ModulePath != tt.module {
				t.Errorf("ModulePath = %q, want %q", got.ModulePath, tt.module)
			}
		})
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: Counter Demo
router:
  routes: ["/", "about", "/play", "/play/count", "/about"]
  initial: "#/play/count?x=1"
frame:
  interval: 33ms
log:
  level: debug
store:
  path: state/lite.db
`)

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{
		Root:          dir,
		AppName:       "Counter Demo",
		Routes:        []string{"/", "/about", "/play", "/play/count"},
		Initial:       "/play/count",
		FrameInterval: 33 * time.Millisecond,
		LogLevel:      slog.LevelDebug,
		StorePath:     filepath.Join(dir, "state", "lite.db"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "app: [unclosed"},
		{"bad interval", "frame:\n  interval: soon\n"},
		{"negative interval", "frame:\n  interval: -1s\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"empty route", "router:\n  routes: [\"/\", \"\"]\n"},
		{"reserved route", "router:\n  routes: [\"/notfound\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.yaml)
			if _, err := Resolve(dir); err == nil {
				t.Errorf("Resolve succeeded for %s", tt.name)
			}
		})
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("LoadOptional mismatch (-want +got):\n%s", diff)
	}
}
