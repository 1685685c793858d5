// Package main is the entry point for the hazcube CLI tool.
package main

import (
	"os"

	"github.com/eodatahub/hazcube/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
