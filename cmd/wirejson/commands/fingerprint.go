// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/wirejson/cmd/wirejson/cli"
	"github.com/bureau-foundation/wirejson/lib/schema"
	"github.com/bureau-foundation/wirejson/lib/schemafile"
)

// fingerprintCommand returns the "fingerprint" subcommand.
func fingerprintCommand() *cli.Command {
	var schemaPath string
	var messageName string

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print schema fingerprints",
		Description: `Compile a schema document and print its registry fingerprint: a
BLAKE3 digest over the descriptor structure. Two parties holding the
same fingerprint hold structurally identical schemas. With --message,
print that single message's fingerprint instead.`,
		Usage: "wirejson fingerprint --schema <file> [--message <name>]",
		Examples: []cli.Example{
			{
				Description: "Fingerprint the whole schema",
				Command:     "wirejson fingerprint --schema market.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			flagSet.StringVar(&schemaPath, "schema", "", "schema document (JSONC or YAML)")
			flagSet.StringVar(&messageName, "message", "", "fingerprint a single message")
			return flagSet
		},
		Run: func(args []string) error {
			if schemaPath == "" {
				return fmt.Errorf("--schema is required")
			}
			if len(args) != 0 {
				return fmt.Errorf("fingerprint takes no positional arguments")
			}
			_, registry, err := schemafile.Load(schemaPath)
			if err != nil {
				return err
			}

			if messageName != "" {
				descriptor, ok := registry.Message(messageName)
				if !ok {
					return fmt.Errorf("schema %s has no message %q", schemaPath, messageName)
				}
				fingerprint, err := schema.MessageFingerprint(descriptor)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %s\n", fingerprint, messageName)
				return nil
			}

			fingerprint, err := schema.RegistryFingerprint(registry)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", fingerprint)
			return nil
		},
	}
}
