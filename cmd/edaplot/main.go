// Package main provides the entry point for the edaplot CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/edaplot/cmd/edaplot/commands"
	"github.com/Sumatoshi-tech/edaplot/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
