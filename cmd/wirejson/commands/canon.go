// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/wirejson/cmd/wirejson/cli"
	"github.com/bureau-foundation/wirejson/lib/codec"
)

// canonCommand returns the "canon" subcommand: decode a message and
// re-emit it in canonical form.
func canonCommand() *cli.Command {
	var schemaPath string
	var messageName string

	return &cli.Command{
		Name:    "canon",
		Summary: "Canonicalize a JSON message",
		Description: `Decode a JSON message and re-encode it canonically: field names in
their lowerCamelCase spelling, fields in schema declaration order,
default-valued fields omitted, 64-bit integers as decimal strings.
Input may use either accepted spelling for any field; output always
uses the canonical one.

Exit status follows "wirejson check": 0 valid, 1 invalid, 2 usage
or IO errors.`,
		Usage: "wirejson canon --schema <file> --message <name> [file]",
		Examples: []cli.Example{
			{
				Description: "Normalize a hand-written message",
				Command:     "wirejson canon --schema market.jsonc --message Allocation draft.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("canon", pflag.ContinueOnError)
			flagSet.StringVar(&schemaPath, "schema", "", "schema document (JSONC or YAML)")
			flagSet.StringVar(&messageName, "message", "", "message name within the schema")
			return flagSet
		},
		Run: func(args []string) error {
			message, err := decodeInput(schemaPath, messageName, args)
			if err != nil {
				return err
			}
			encoded, err := codec.Marshal(message)
			if err != nil {
				return fmt.Errorf("re-encoding: %w", err)
			}
			fmt.Fprintf(os.Stdout, "%s\n", encoded)
			return nil
		},
	}
}
