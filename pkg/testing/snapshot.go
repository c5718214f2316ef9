package testing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/dom"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is the outline of a node tree as produced by dom.Outline.
type Snapshot struct {
	Lines []string
}

// CaptureSnapshot captures the current page outline.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return Capture(t.page)
}

// Capture captures the outline of root's children.
func Capture(root *html.Node) *Snapshot {
	return &Snapshot{Lines: dom.Outline(root)}
}

// String returns the outline as text.
func (s *Snapshot) String() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return strings.Join(s.Lines, "\n") + "\n"
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When LITE_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("LITE_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: LITE_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(parseSnapshot(string(data))); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\n\nTo update: LITE_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s.String()), 0o644)
}

// Diff returns a line diff from other to this snapshot, or "" if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other.Lines, s.Lines)
}

func parseSnapshot(text string) *Snapshot {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return &Snapshot{}
	}
	return &Snapshot{Lines: strings.Split(text, "\n")}
}
