// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 digest over the deterministic CBOR
// encoding of descriptor structure. Two descriptors with identical
// field lists, types, and name mappings have identical fingerprints;
// any structural change (field added, kind changed, oneof membership
// moved) changes the fingerprint.
type Fingerprint [FingerprintSize]byte

// FingerprintSize is the fingerprint length in bytes.
const FingerprintSize = 32

// fingerprintKey is a 32-byte key for BLAKE3 keyed hashing. Domain
// separation ensures the same CBOR bytes hash differently as a
// message fingerprint versus a registry fingerprint. The byte values
// are the ASCII domain name, zero-padded to 32 bytes, so the keys are
// inspectable in hex dumps.
type fingerprintKey [32]byte

var (
	messageDomainKey = fingerprintKey{
		'w', 'i', 'r', 'e', 'j', 's', 'o', 'n', '.', 's', 'c', 'h', 'e', 'm', 'a', '.',
		'm', 'e', 's', 's', 'a', 'g', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	enumDomainKey = fingerprintKey{
		'w', 'i', 'r', 'e', 'j', 's', 'o', 'n', '.', 's', 'c', 'h', 'e', 'm', 'a', '.',
		'e', 'n', 'u', 'm', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	registryDomainKey = fingerprintKey{
		'w', 'i', 'r', 'e', 'j', 's', 'o', 'n', '.', 's', 'c', 'h', 'e', 'm', 'a', '.',
		'r', 'e', 'g', 'i', 's', 't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// fingerprintEncMode is the CBOR encoder configured with Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. Same descriptor
// structure always produces identical bytes, so fingerprints are
// stable across processes and releases.
var fingerprintEncMode cbor.EncMode

func init() {
	var err error
	fingerprintEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("schema: CBOR encoder initialization failed: " + err.Error())
	}
}

// fingerprintField is the canonical structural form of a field.
// Enum and message references are recorded by descriptor NAME, not by
// recursive structure — recursing would not terminate on cyclic
// schemas. Structural drift in a referenced message is caught by the
// registry fingerprint, which covers every descriptor.
type fingerprintField struct {
	Name        string `cbor:"name"`
	JSONName    string `cbor:"json_name"`
	Kind        string `cbor:"kind"`
	Cardinality string `cbor:"cardinality"`
	Reference   string `cbor:"reference,omitempty"`
	MapKey      string `cbor:"map_key,omitempty"`
	Oneof       string `cbor:"oneof,omitempty"`
}

// fingerprintMessage is the canonical structural form of a message.
type fingerprintMessage struct {
	Name   string             `cbor:"name"`
	Fields []fingerprintField `cbor:"fields"`
}

// fingerprintEnum is the canonical structural form of an enum.
// Values are sorted by number so declaration order does not affect
// the fingerprint.
type fingerprintEnum struct {
	Name   string      `cbor:"name"`
	Values []EnumValue `cbor:"values"`
}

// MessageFingerprint computes the fingerprint of a single message
// descriptor.
func MessageFingerprint(message *Message) (Fingerprint, error) {
	encoded, err := fingerprintEncMode.Marshal(canonicalMessage(message))
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding message %s for fingerprinting: %w", message.Name(), err)
	}
	return keyedHash(messageDomainKey, encoded), nil
}

// EnumFingerprint computes the fingerprint of a single enum
// descriptor.
func EnumFingerprint(enum *Enum) (Fingerprint, error) {
	encoded, err := fingerprintEncMode.Marshal(canonicalEnum(enum))
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding enum %s for fingerprinting: %w", enum.Name(), err)
	}
	return keyedHash(enumDomainKey, encoded), nil
}

// RegistryFingerprint computes the fingerprint of an entire registry:
// every enum and message, sorted by name so registration order does
// not matter. This is the digest bundles embed and the CLI prints for
// schema drift checks.
func RegistryFingerprint(registry *Registry) (Fingerprint, error) {
	enums := make([]fingerprintEnum, 0, len(registry.enums))
	for _, enum := range registry.Enums() {
		enums = append(enums, canonicalEnum(enum))
	}
	sort.Slice(enums, func(i, j int) bool { return enums[i].Name < enums[j].Name })

	messages := make([]fingerprintMessage, 0, len(registry.messages))
	for _, message := range registry.Messages() {
		messages = append(messages, canonicalMessage(message))
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].Name < messages[j].Name })

	document := struct {
		Enums    []fingerprintEnum    `cbor:"enums"`
		Messages []fingerprintMessage `cbor:"messages"`
	}{Enums: enums, Messages: messages}

	encoded, err := fingerprintEncMode.Marshal(document)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding registry for fingerprinting: %w", err)
	}
	return keyedHash(registryDomainKey, encoded), nil
}

// canonicalMessage converts a descriptor to its canonical structural
// form.
func canonicalMessage(message *Message) fingerprintMessage {
	fields := make([]fingerprintField, len(message.fields))
	for i, field := range message.fields {
		entry := fingerprintField{
			Name:        field.Name,
			JSONName:    field.JSONName,
			Kind:        field.Type.Kind.String(),
			Cardinality: field.Cardinality.String(),
			Oneof:       field.Oneof,
		}
		switch field.Type.Kind {
		case KindEnum:
			entry.Reference = field.Type.Enum.Name()
		case KindMessage:
			entry.Reference = field.Type.Message.Name()
		}
		if field.Cardinality == MapOf {
			entry.MapKey = field.Key.String()
		}
		fields[i] = entry
	}
	return fingerprintMessage{Name: message.name, Fields: fields}
}

// canonicalEnum converts an enum descriptor to its canonical
// structural form.
func canonicalEnum(enum *Enum) fingerprintEnum {
	values := make([]EnumValue, len(enum.values))
	copy(values, enum.values)
	sort.Slice(values, func(i, j int) bool { return values[i].Number < values[j].Number })
	return fingerprintEnum{Name: enum.name, Values: values}
}

// keyedHash computes a domain-separated BLAKE3 hash.
func keyedHash(key fingerprintKey, data []byte) Fingerprint {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed fails only on wrong key length; ours is fixed at 32.
		panic("schema: BLAKE3 keyed hasher initialization failed: " + err.Error())
	}
	hasher.Write(data)

	var digest Fingerprint
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding of the fingerprint. This is the
// canonical format used in bundle headers, CLI output, and logs.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// ParseFingerprint parses a hex-encoded fingerprint string. Returns
// an error unless the input is exactly 64 hex characters.
func ParseFingerprint(hexString string) (Fingerprint, error) {
	var digest Fingerprint
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
