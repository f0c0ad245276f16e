// Package main provides the arc compiler CLI.
package main

import (
	"os"

	"github.com/arc-ml/arc/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
