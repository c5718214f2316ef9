// Command lite runs the component demo in a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/lite/cmd/lite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
