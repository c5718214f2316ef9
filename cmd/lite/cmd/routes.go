package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-drift/lite/cmd/lite/internal/config"
	"github.com/go-drift/lite/pkg/navigation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "routes",
		Short: "List declared routes",
		Long: `List the routes declared in lite.yaml (or the defaults) together with
the layout stack each one renders through.`,
		Usage: "lite routes",
		Run:   runRoutes,
	})
}

func runRoutes(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	cfg, err := resolveProject()
	if err != nil {
		return err
	}
	return printRoutes(stdout, cfg)
}

func printRoutes(w io.Writer, cfg *config.Resolved) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tSTACK")
	for _, r := range cfg.Routes {
		fmt.Fprintf(tw, "%s\t%s\n", r, strings.Join(navigation.BuildRouteStack(r), " > "))
	}
	if cfg.Initial != "" {
		fmt.Fprintf(tw, "\ninitial: %s\n", cfg.Initial)
	}
	return tw.Flush()
}
