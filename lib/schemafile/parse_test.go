// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const jsoncDocument = `{
	// The allocation lifecycle.
	"enums": [
		{"name": "AllocationState", "values": [
			{"name": "ALLOCATION_STATE_UNSPECIFIED", "number": 0},
			{"name": "ALLOCATION_STATE_ACTIVE", "number": 4},
		]},
	],
	"messages": [
		{"name": "Allocation", "fields": [
			{"name": "allocation_id", "type": "string"},
			{"name": "state", "type": "AllocationState"},
			{"name": "tags", "type": "string", "repeated": true},
		]},
	],
}`

const yamlDocument = `
enums:
  - name: AllocationState
    values:
      - name: ALLOCATION_STATE_UNSPECIFIED
        number: 0
      - name: ALLOCATION_STATE_ACTIVE
        number: 4
messages:
  - name: Allocation
    fields:
      - name: allocation_id
        type: string
      - name: state
        type: AllocationState
      - name: tags
        type: string
        repeated: true
`

func TestParseJSONCAndYAMLAgree(t *testing.T) {
	fromJSONC, err := Parse([]byte(jsoncDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fromYAML, err := ParseYAML([]byte(yamlDocument))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	if !reflect.DeepEqual(fromJSONC, fromYAML) {
		t.Errorf("documents differ:\n jsonc: %+v\n yaml:  %+v", fromJSONC, fromYAML)
	}
	if len(fromJSONC.Messages) != 1 || len(fromJSONC.Messages[0].Fields) != 3 {
		t.Errorf("unexpected document shape: %+v", fromJSONC)
	}
	if !fromJSONC.Messages[0].Fields[2].Repeated {
		t.Error("repeated marker lost in parse")
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	if _, err := Parse([]byte(`{"messages": "not a list"}`)); err == nil {
		t.Error("Parse accepted a mistyped document")
	}
	if _, err := ParseYAML([]byte("messages: [\n  broken")); err == nil {
		t.Error("ParseYAML accepted malformed YAML")
	}
}

func TestReadFileDispatchesOnExtension(t *testing.T) {
	directory := t.TempDir()

	jsoncPath := filepath.Join(directory, "schema.jsonc")
	if err := os.WriteFile(jsoncPath, []byte(jsoncDocument), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	yamlPath := filepath.Join(directory, "schema.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlDocument), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fromJSONC, err := ReadFile(jsoncPath)
	if err != nil {
		t.Fatalf("ReadFile(jsonc): %v", err)
	}
	fromYAML, err := ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("ReadFile(yaml): %v", err)
	}
	if !reflect.DeepEqual(fromJSONC, fromYAML) {
		t.Error("ReadFile parsed the same document differently per extension")
	}

	if _, err := ReadFile(filepath.Join(directory, "missing.jsonc")); err == nil {
		t.Error("ReadFile on a missing path succeeded")
	}
}

func TestLoad(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "schema.jsonc")
	if err := os.WriteFile(path, []byte(jsoncDocument), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	document, registry, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(document.Messages) != 1 {
		t.Errorf("document has %d messages, want 1", len(document.Messages))
	}
	if _, ok := registry.Message("Allocation"); !ok {
		t.Error("registry is missing Allocation")
	}
}
