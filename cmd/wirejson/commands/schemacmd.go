// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/wirejson/cmd/wirejson/cli"
	"github.com/bureau-foundation/wirejson/lib/schema"
	"github.com/bureau-foundation/wirejson/lib/schemafile"
)

// schemaCommand returns the "schema" command group.
func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Inspect schema documents",
		Subcommands: []*cli.Command{
			schemaListCommand(),
		},
	}
}

func schemaListCommand() *cli.Command {
	var schemaPath string

	return &cli.Command{
		Name:    "list",
		Summary: "List the messages and enums of a schema",
		Description: `Compile a schema document and list its contents: every message with
its fields (canonical and JSON spellings, type, cardinality) and
every enum with its values.`,
		Usage: "wirejson schema list --schema <file>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVar(&schemaPath, "schema", "", "schema document (JSONC or YAML)")
			return flagSet
		},
		Run: func(args []string) error {
			if schemaPath == "" {
				return fmt.Errorf("--schema is required")
			}
			if len(args) != 0 {
				return fmt.Errorf("list takes no positional arguments")
			}
			_, registry, err := schemafile.Load(schemaPath)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, message := range registry.Messages() {
				fmt.Fprintf(writer, "message %s\n", message.Name())
				for _, field := range message.Fields() {
					fmt.Fprintf(writer, "  %s\t%s\t%s\n",
						field.Name, field.JSONName, fieldTypeLabel(&field))
				}
			}
			for _, enum := range registry.Enums() {
				fmt.Fprintf(writer, "enum %s\n", enum.Name())
				for _, value := range enum.Values() {
					fmt.Fprintf(writer, "  %s\t%d\t\n", value.Name, value.Number)
				}
			}
			return writer.Flush()
		},
	}
}

// fieldTypeLabel renders a field's type with its cardinality marker.
func fieldTypeLabel(field *schema.Field) string {
	switch field.Cardinality {
	case schema.Optional:
		return "optional " + field.Type.String()
	case schema.Repeated:
		return "repeated " + field.Type.String()
	case schema.MapOf:
		return fmt.Sprintf("map<%s, %s>", field.Key, field.Type)
	}
	if field.Oneof != "" {
		return fmt.Sprintf("%s (oneof %s)", field.Type, field.Oneof)
	}
	return field.Type.String()
}
