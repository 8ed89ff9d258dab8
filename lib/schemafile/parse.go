// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// Document is a declarative schema: the enums and messages of one
// namespace, in declaration order. Field and message names may refer
// to types declared later in the same document.
type Document struct {
	Enums    []EnumDef    `json:"enums,omitempty" yaml:"enums,omitempty"`
	Messages []MessageDef `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// EnumDef declares a named enum and its values.
type EnumDef struct {
	Name   string     `json:"name" yaml:"name"`
	Values []ValueDef `json:"values" yaml:"values"`
}

// ValueDef is one enum value: an UPPER_SNAKE_CASE name and its number.
type ValueDef struct {
	Name   string `json:"name" yaml:"name"`
	Number int32  `json:"number" yaml:"number"`
}

// MessageDef declares a named message and its fields.
type MessageDef struct {
	Name   string     `json:"name" yaml:"name"`
	Fields []FieldDef `json:"fields" yaml:"fields"`
}

// FieldDef declares one field. Type names either a scalar kind (bool,
// int32, int64, uint32, uint64, float, string, bytes) or a message or
// enum declared in the same document. At most one of Optional,
// Repeated, and MapKey may be set; Oneof names a group and implies a
// plain singular field.
type FieldDef struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Repeated bool   `json:"repeated,omitempty" yaml:"repeated,omitempty"`
	MapKey   string `json:"map_key,omitempty" yaml:"map_key,omitempty"`
	Oneof    string `json:"oneof,omitempty" yaml:"oneof,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Document.
func Parse(data []byte) (*Document, error) {
	stripped := jsonc.ToJSON(data)

	var document Document
	if err := json.Unmarshal(stripped, &document); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	return &document, nil
}

// ParseYAML unmarshals a YAML schema document.
func ParseYAML(data []byte) (*Document, error) {
	var document Document
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	return &document, nil
}

// ReadFile reads a schema document from disk, dispatching on the file
// extension: .yaml and .yml parse as YAML, everything else as JSONC.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var document *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		document, err = ParseYAML(data)
	default:
		document, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return document, nil
}

// Load reads and compiles a schema document in one step.
func Load(path string) (*Document, *schema.Registry, error) {
	document, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	registry, err := Build(document)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return document, registry, nil
}
