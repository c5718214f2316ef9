package app

import (
	goerrors "errors"
	"fmt"
	"strings"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = goerrors.New("quit")

const helpText = `commands:
  nav <path>         navigate, e.g. nav /play/count
  click <selector>   click the first element matching a CSS selector
  state              print the state of every mounted component
  tree               print the visible page
  html               print the page markup
  help               show this help
  quit               exit`

// Exec runs one interactive command and returns its output. Commands that
// change state return no output; the caller prints the tree once frames
// have settled.
func (a *App) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch fields[0] {
	case "help", "?":
		return helpText, nil
	case "nav", "go":
		if arg == "" {
			return "", fmt.Errorf("usage: nav <path>")
		}
		a.Navigate(arg)
		return "", nil
	case "click":
		if arg == "" {
			return "", fmt.Errorf("usage: click <selector>")
		}
		if !a.Click(arg) {
			return "", fmt.Errorf("nothing handled a click on %q", arg)
		}
		return "", nil
	case "state":
		return a.State(), nil
	case "tree":
		return a.Tree(), nil
	case "html":
		return a.HTML(), nil
	case "quit", "exit":
		return "", ErrQuit
	default:
		return "", fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}

// State describes every live component record, one line per key.
func (a *App) State() string {
	var sb strings.Builder
	seen := make(map[string]bool)
	for _, in := range a.registry.Instances() {
		if in.Released() {
			continue
		}
		rec := in.Component().Record()
		if seen[rec.ID()] {
			continue
		}
		seen[rec.ID()] = true
		fmt.Fprintf(&sb, "%s (%s)\n", rec.ID(), in.Definition().Tag)
		for _, key := range rec.Keys() {
			v, _ := rec.Value(key)
			fmt.Fprintf(&sb, "  %s = %v\n", key, v)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
