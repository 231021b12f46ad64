// Package main is the entry point for the marketvet CLI.
package main

import (
	"os"

	"github.com/marketvet/marketvet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
