package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/lite/cmd/lite/internal/app"
	"github.com/go-drift/lite/cmd/lite/internal/config"
	"github.com/go-drift/lite/pkg/frame"
	"github.com/go-drift/lite/pkg/navigation"
)

// renderFrames bounds the frames a render may take to settle.
const renderFrames = 100

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Print the settled page for a route",
		Long: `Mount the demo at a route, run frames until nothing is pending, and
print the resulting markup. The state database is never opened, so the
output always reflects initial state.

Flags:
  --tree    Print an outline of the visible page instead of markup`,
		Usage: "lite render [path] [--tree]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	path := ""
	tree := false
	for _, arg := range args {
		switch {
		case arg == "--tree":
			tree = true
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case path != "":
			return fmt.Errorf("unexpected argument %q", arg)
		default:
			path = arg
		}
	}

	cfg, err := resolveProject()
	if err != nil {
		return err
	}
	logger, restore := newLogger(os.Stderr, cfg.LogLevel)
	defer restore()

	return renderPage(stdout, cfg, path, tree, logger)
}

// renderPage writes the settled page for path to w. An empty path uses the
// configured initial route.
func renderPage(w io.Writer, cfg *config.Resolved, path string, tree bool, logger *slog.Logger) error {
	initial := cfg.Initial
	if path != "" {
		initial = navigation.NormalizeRoute(path)
	}

	sched := frame.NewManual()
	a, err := app.New(app.Options{
		Name:      cfg.AppName,
		Routes:    cfg.Routes,
		Initial:   initial,
		Scheduler: sched,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := sched.PumpUntilIdle(renderFrames); err != nil {
		return err
	}
	if tree {
		_, err = fmt.Fprintln(w, a.Tree())
	} else {
		_, err = fmt.Fprintln(w, a.HTML())
	}
	return err
}
