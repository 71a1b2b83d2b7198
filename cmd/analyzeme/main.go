// Package main is the entry point for the analyzeme CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/analyzeme/cmd/analyzeme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
