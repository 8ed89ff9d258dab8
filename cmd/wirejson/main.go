// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/wirejson/cmd/wirejson/commands"
	"github.com/bureau-foundation/wirejson/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own diagnostics (like check)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	// Handle --version before dispatch.
	for _, argument := range os.Args[1:] {
		if argument == "--version" {
			fmt.Printf("wirejson %s\n", version.Info())
			return nil
		}
	}
	return commands.Root().Execute(os.Args[1:])
}
