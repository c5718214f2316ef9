package cmd

import (
	"bufio"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/lite/cmd/lite/internal/app"
	"github.com/go-drift/lite/pkg/frame"
	"github.com/go-drift/lite/pkg/navigation"
	"github.com/go-drift/lite/pkg/persist"
)

// settleFrames bounds how many frames a command may take to settle
// before its output is printed.
const settleFrames = 10

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run the interactive demo",
		Long: `Run the demo application and read commands from standard input.

The frame loop runs in the background. Each command is executed on the
loop, the tree is allowed to settle, and the visible page is printed.

Commands:
  nav <path>         navigate, e.g. nav /play/count
  click <selector>   click the first element matching a CSS selector
  state              print the state of every mounted component
  tree               print the visible page
  html               print the page markup
  quit               exit

Flags:
  --no-store         Do not open the state database from lite.yaml

The starting route defaults to router.initial from lite.yaml.`,
		Usage: "lite run [path] [--no-store]",
		Run:   runRun,
	})
}

type runOptions struct {
	initial string
	noStore bool
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for _, arg := range args {
		switch {
		case arg == "--no-store":
			opts.noStore = true
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown flag %q", arg)
		case opts.initial != "":
			return opts, fmt.Errorf("unexpected argument %q", arg)
		default:
			opts.initial = navigation.NormalizeRoute(arg)
		}
	}
	return opts, nil
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	cfg, err := resolveProject()
	if err != nil {
		return err
	}
	if opts.initial == "" {
		opts.initial = cfg.Initial
	}

	logger, restore := newLogger(os.Stderr, cfg.LogLevel)
	defer restore()

	var store persist.Store
	if cfg.StorePath != "" && !opts.noStore {
		bs, err := persist.OpenBolt(cfg.StorePath)
		if err != nil {
			return err
		}
		defer bs.Close()
		store = bs
	}

	loop := frame.NewLoop(cfg.FrameInterval)
	a, err := app.New(app.Options{
		Name:      cfg.AppName,
		Routes:    cfg.Routes,
		Initial:   opts.initial,
		Scheduler: loop,
		Logger:    logger,
		Store:     store,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{
		app:         a,
		loop:        loop,
		logger:      logger,
		out:         stdout,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	logger.Debug("starting", "app", cfg.AppName, "root", cfg.Root, "route", opts.initial, "interval", cfg.FrameInterval)
	err = s.run(ctx, os.Stdin)
	a.Close()
	return err
}

// session feeds input lines to an app running on a frame loop.
type session struct {
	app         *app.App
	loop        *frame.Loop
	logger      *slog.Logger
	out         io.Writer
	interactive bool
}

// run drives the loop until input ends, quit is entered or ctx is done.
func (s *session) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go readLines(in, lines)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		if !s.do(ctx, s.show) {
			return nil
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				quit := false
				if !s.do(ctx, func() { quit = s.handle(line) }) || quit {
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !goerrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// do runs fn on the loop goroutine and waits for it. It reports false when
// ctx ended first.
func (s *session) do(ctx context.Context, fn func()) bool {
	done := make(chan struct{})
	s.loop.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// show settles pending frames and prints the visible page.
func (s *session) show() {
	s.settle()
	fmt.Fprintln(s.out, s.app.Tree())
	s.prompt()
}

// handle executes one command line and reports whether to quit.
func (s *session) handle(line string) bool {
	out, err := s.app.Exec(line)
	if goerrors.Is(err, app.ErrQuit) {
		return true
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		s.prompt()
		return false
	}
	s.settle()
	switch {
	case out != "":
		fmt.Fprintln(s.out, out)
	case strings.TrimSpace(line) != "":
		fmt.Fprintln(s.out, s.app.Tree())
	}
	s.prompt()
	return false
}

func (s *session) settle() {
	if err := s.loop.FlushUntilIdle(settleFrames); err != nil {
		s.logger.Warn("frames did not settle", "error", err, "pending", s.loop.Pending())
	}
}

func (s *session) prompt() {
	if s.interactive {
		fmt.Fprint(s.out, "> ")
	}
}

// readLines sends each line of r to lines and closes it at EOF.
func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines <- sc.Text()
	}
}
