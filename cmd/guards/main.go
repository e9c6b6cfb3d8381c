// Package main provides the guards CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/guards/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
