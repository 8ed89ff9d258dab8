// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/wirejson/lib/schema"
	"github.com/bureau-foundation/wirejson/lib/schemafile"
)

func testDocument() *schemafile.Document {
	return &schemafile.Document{
		Enums: []schemafile.EnumDef{
			{Name: "AllocationState", Values: []schemafile.ValueDef{
				{Name: "ALLOCATION_STATE_UNSPECIFIED", Number: 0},
				{Name: "ALLOCATION_STATE_ACTIVE", Number: 4},
			}},
		},
		Messages: []schemafile.MessageDef{
			{Name: "Allocation", Fields: []schemafile.FieldDef{
				{Name: "allocation_id", Type: "string"},
				{Name: "sequence", Type: "uint64"},
				{Name: "state", Type: "AllocationState"},
				{Name: "tags", Type: "string", Repeated: true},
				{Name: "usage_rates", Type: "uint64", MapKey: "string"},
			}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			document := testDocument()
			data, err := Encode(document, tag)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			decoded, registry, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(decoded, document) {
				t.Errorf("document changed across the round trip:\n in:  %+v\n out: %+v", document, decoded)
			}
			if _, ok := registry.Message("Allocation"); !ok {
				t.Error("rebuilt registry is missing Allocation")
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := Encode(testDocument(), CompressionZstd)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(testDocument(), CompressionZstd)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encoding the same document twice produced different bytes")
	}
}

func TestEncodeRejectsInvalidDocument(t *testing.T) {
	document := &schemafile.Document{
		Messages: []schemafile.MessageDef{
			{Name: "M", Fields: []schemafile.FieldDef{{Name: "f", Type: "Mystery"}}},
		},
	}
	if _, err := Encode(document, CompressionNone); err == nil {
		t.Error("Encode accepted an uncompilable document")
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	data, err := Encode(testDocument(), CompressionNone)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	t.Run("truncated header", func(t *testing.T) {
		if _, _, err := Decode(data[:10]); err == nil {
			t.Error("Decode accepted a truncated bundle")
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		corrupted[0] = 'X'
		if _, _, err := Decode(corrupted); err == nil {
			t.Error("Decode accepted a bundle with bad magic")
		}
	})

	t.Run("unknown compression tag", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		corrupted[4] = 0xFF
		if _, _, err := Decode(corrupted); err == nil {
			t.Error("Decode accepted an unknown compression tag")
		}
	})

	t.Run("altered fingerprint", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		corrupted[9] ^= 0x01
		_, _, err := Decode(corrupted)
		if err == nil || !strings.Contains(err.Error(), "fingerprint mismatch") {
			t.Errorf("Decode = %v, want fingerprint mismatch", err)
		}
	})
}

func TestFingerprintTracksRegistry(t *testing.T) {
	data, err := Encode(testDocument(), CompressionNone)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := ReadInfo(data)
	if err != nil {
		t.Fatalf("ReadInfo: %v", err)
	}

	registry, err := schemafile.Build(testDocument())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fingerprint, err := schema.RegistryFingerprint(registry)
	if err != nil {
		t.Fatalf("RegistryFingerprint: %v", err)
	}
	if info.Fingerprint != fingerprint {
		t.Errorf("header fingerprint %s, want %s", info.Fingerprint, fingerprint)
	}
}

func TestWriteRead(t *testing.T) {
	var buffer bytes.Buffer
	if err := Write(&buffer, testDocument(), CompressionLZ4); err != nil {
		t.Fatalf("Write: %v", err)
	}
	document, registry, err := Read(&buffer)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(document.Messages) != 1 {
		t.Errorf("document has %d messages, want 1", len(document.Messages))
	}
	if _, ok := registry.Enum("AllocationState"); !ok {
		t.Error("registry is missing AllocationState")
	}
}

func TestParseCompressionTag(t *testing.T) {
	for _, tag := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompressionTag(tag.String())
		if err != nil {
			t.Fatalf("ParseCompressionTag(%s): %v", tag, err)
		}
		if parsed != tag {
			t.Errorf("ParseCompressionTag(%s) = %s", tag, parsed)
		}
	}
	if _, err := ParseCompressionTag("gzip"); err == nil {
		t.Error("ParseCompressionTag accepted gzip")
	}
}
