// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the wirejson CLI command tree.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/wirejson/cmd/wirejson/cli"
	"github.com/bureau-foundation/wirejson/lib/codec"
	"github.com/bureau-foundation/wirejson/lib/schema"
	"github.com/bureau-foundation/wirejson/lib/schemafile"
	"github.com/bureau-foundation/wirejson/lib/version"
)

// Root builds and returns the complete wirejson command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "wirejson",
		Description: `wirejson: schema-driven JSON message tooling.

Validate, canonicalize, and fingerprint JSON messages against
declarative schemas, and package compiled schemas as portable
bundles.`,
		Subcommands: []*cli.Command{
			checkCommand(),
			canonCommand(),
			fingerprintCommand(),
			bundleCommand(),
			schemaCommand(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Printf("wirejson %s\n", version.Info())
			return nil
		},
	}
}

// loadMessageDescriptor compiles the schema document at schemaPath and
// looks up the named message descriptor.
func loadMessageDescriptor(schemaPath, messageName string) (*schema.Message, error) {
	if schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	if messageName == "" {
		return nil, fmt.Errorf("--message is required")
	}
	_, registry, err := schemafile.Load(schemaPath)
	if err != nil {
		return nil, err
	}
	descriptor, ok := registry.Message(messageName)
	if !ok {
		return nil, fmt.Errorf("schema %s has no message %q", schemaPath, messageName)
	}
	return descriptor, nil
}

// readInput reads the message payload: from the named file when a
// positional argument is given, from stdin otherwise.
func readInput(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	case 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("at most one input file")
	}
}

// decodeInput runs the strict decoder over the input. Codec errors
// are reported on stderr and converted to exit code 1; everything
// else (usage, IO, schema problems) surfaces as a regular error for
// exit code 2.
func decodeInput(schemaPath, messageName string, args []string) (*codec.Message, error) {
	descriptor, err := loadMessageDescriptor(schemaPath, messageName)
	if err != nil {
		return nil, err
	}
	data, err := readInput(args)
	if err != nil {
		return nil, err
	}
	message, err := codec.Unmarshal(data, descriptor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		return nil, &cli.ExitError{Code: 1}
	}
	return message, nil
}
