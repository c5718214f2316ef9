package testing

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"testing"

	"golang.org/x/net/html"

	"github.com/go-drift/lite/pkg/component"
	"github.com/go-drift/lite/pkg/core"
	"github.com/go-drift/lite/pkg/dom"
	"github.com/go-drift/lite/pkg/frame"
)

// DefaultMaxFrames bounds PumpUntilIdle.
const DefaultMaxFrames = 100

// Option configures a Tester.
type Option func(*Tester)

// WithFS serves component templates and styles from fsys.
func WithFS(fsys fs.FS) Option {
	return func(t *Tester) { t.fsys = fsys }
}

// WithLogger sets the runtime logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tester) { t.logger = logger }
}

// Tester mounts components onto a detached page and drives their frames by
// hand. Component ids are deterministic: "<tag>-<n>" in registration order.
type Tester struct {
	fsys   fs.FS
	logger *slog.Logger

	sched    *frame.Manual
	runtime  *core.Runtime
	loader   *component.Loader
	registry *component.Registry
	page     *html.Node
	ids      int
}

// NewTester creates a tester with an empty page.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...Option) *Tester {
	t := &Tester{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sched:  frame.NewManual(),
		page:   dom.NewElement("body"),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.runtime = core.NewRuntime(t.sched,
		core.WithLogger(t.logger),
		core.WithIDGenerator(t.nextID),
	)
	t.loader = component.NewLoader(t.fsys)
	t.registry = component.NewRegistry(t.runtime, t.loader)
	return t
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, opts ...Option) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

func (t *Tester) nextID(tag string) string {
	t.ids++
	return fmt.Sprintf("%s-%d", tag, t.ids)
}

// Cleanup clears the page and releases every mounted instance.
func (t *Tester) Cleanup() {
	dom.RemoveChildren(t.page)
	t.registry.Sweep(t.page)
}

// Runtime returns the runtime components register with.
func (t *Tester) Runtime() *core.Runtime { return t.runtime }

// Registry returns the component registry.
func (t *Tester) Registry() *component.Registry { return t.registry }

// Loader returns the template loader.
func (t *Tester) Loader() *component.Loader { return t.loader }

// Scheduler returns the manual frame scheduler.
func (t *Tester) Scheduler() *frame.Manual { return t.sched }

// Page returns the page root.
func (t *Tester) Page() *html.Node { return t.page }

// Define registers component definitions.
func (t *Tester) Define(defs ...component.Definition) error {
	for _, def := range defs {
		if err := t.registry.Define(def); err != nil {
			return err
		}
	}
	return nil
}

// MountHTML appends markup to the page, mounts every defined host in it and
// pumps until idle.
func (t *Tester) MountHTML(markup string) ([]*component.Instance, error) {
	fragment, err := dom.Parse(markup)
	if err != nil {
		return nil, err
	}
	for fragment.FirstChild != nil {
		dom.Append(t.page, fragment.FirstChild)
	}
	mounted, err := t.registry.MountTree(t.page)
	if err != nil {
		return mounted, err
	}
	return mounted, t.PumpUntilIdle()
}

// Pump runs the frames requested so far and returns how many ran.
func (t *Tester) Pump() int {
	return t.sched.Pump()
}

// PumpUntilIdle runs frames until none are pending. It returns
// frame.ErrNotSettled after DefaultMaxFrames frames.
func (t *Tester) PumpUntilIdle() error {
	return t.sched.PumpUntilIdle(DefaultMaxFrames)
}

// Find evaluates a finder against the page.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.page), finder: finder}
}

// Text returns the text content of the first node matched by finder, or ""
// when nothing matches.
func (t *Tester) Text(finder Finder) string {
	return dom.Text(t.Find(finder).FirstOrNil())
}

// Instance returns the instance mounted on the first node matched by
// finder.
func (t *Tester) Instance(finder Finder) (*component.Instance, bool) {
	n := t.Find(finder).FirstOrNil()
	if n == nil {
		return nil, false
	}
	return t.registry.Instance(n)
}
