// Command wattfocus renders electricity tariff offers and compares them.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/wattfocus/internal/cli"
	"github.com/rshade/wattfocus/pkg/version"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	root := cli.NewRootCmd(version.String())
	if err := root.Execute(); err != nil {
		// cobra has already printed the error.
		return fmt.Errorf("wattfocus: %w", err)
	}
	return nil
}
