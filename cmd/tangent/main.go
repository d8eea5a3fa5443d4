// Package main provides the tangent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/born-ml/tangent/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
