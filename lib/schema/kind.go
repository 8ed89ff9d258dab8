// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// Kind identifies the value type of a field. Scalar kinds map
// directly to JSON token types (with the 64-bit integer kinds using
// decimal strings on the wire); Enum and Message kinds carry a
// reference to their descriptor in [Type].
type Kind int

const (
	// KindInvalid is the zero Kind. It never appears in a validated
	// descriptor.
	KindInvalid Kind = iota

	// KindBool is a boolean, encoded as a JSON boolean.
	KindBool

	// KindInt32 is a signed 32-bit integer, encoded as a JSON number.
	KindInt32

	// KindInt64 is a signed 64-bit integer, encoded as a decimal
	// JSON string (JSON numbers lose precision above 2^53).
	KindInt64

	// KindUint32 is an unsigned 32-bit integer, encoded as a JSON
	// number.
	KindUint32

	// KindUint64 is an unsigned 64-bit integer, encoded as a decimal
	// JSON string.
	KindUint64

	// KindFloat is a 64-bit floating point value, encoded as a JSON
	// number.
	KindFloat

	// KindString is a UTF-8 string, encoded as a JSON string.
	KindString

	// KindBytes is a byte string, encoded as padded standard base64.
	KindBytes

	// KindEnum is an enumeration value. Encoded as the registered
	// name string; decoding also accepts a registered number.
	KindEnum

	// KindMessage is a nested message, encoded as a JSON object.
	KindMessage
)

var kindNames = map[Kind]string{
	KindBool:    "bool",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat:   "float",
	KindString:  "string",
	KindBytes:   "bytes",
	KindEnum:    "enum",
	KindMessage: "message",
}

// String returns the schema-document spelling of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsScalar reports whether the kind is a scalar (neither enum nor
// message reference).
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInt32, KindInt64, KindUint32, KindUint64,
		KindFloat, KindString, KindBytes:
		return true
	}
	return false
}

// validMapKey reports whether the kind may be used as a map key.
// Float, bytes, enum, and message keys are not representable as
// stable JSON object keys.
func (k Kind) validMapKey() bool {
	switch k {
	case KindBool, KindInt32, KindInt64, KindUint32, KindUint64, KindString:
		return true
	}
	return false
}

// Type is a field's value type: a kind plus the descriptor reference
// for enum and message kinds. Exactly one of Enum and Message is set,
// and only when Kind is KindEnum or KindMessage respectively.
type Type struct {
	Kind    Kind
	Enum    *Enum
	Message *Message
}

// String returns the type's schema-document spelling: the referenced
// descriptor name for enum and message types, the kind name otherwise.
func (t Type) String() string {
	switch t.Kind {
	case KindEnum:
		if t.Enum != nil {
			return t.Enum.Name()
		}
	case KindMessage:
		if t.Message != nil {
			return t.Message.Name()
		}
	}
	return t.Kind.String()
}

// validate checks kind/reference consistency.
func (t Type) validate() error {
	switch t.Kind {
	case KindEnum:
		if t.Enum == nil {
			return fmt.Errorf("enum type missing enum descriptor")
		}
		if t.Message != nil {
			return fmt.Errorf("enum type must not carry a message descriptor")
		}
	case KindMessage:
		if t.Message == nil {
			return fmt.Errorf("message type missing message descriptor")
		}
		if t.Enum != nil {
			return fmt.Errorf("message type must not carry an enum descriptor")
		}
	default:
		if !t.Kind.IsScalar() {
			return fmt.Errorf("invalid kind %s", t.Kind)
		}
		if t.Enum != nil || t.Message != nil {
			return fmt.Errorf("scalar type %s must not carry a descriptor reference", t.Kind)
		}
	}
	return nil
}

// Cardinality describes how many values a field holds and whether
// its presence is tracked explicitly.
type Cardinality int

const (
	// Singular is a plain proto3 field: one value, no presence
	// tracking for scalars. A singular field at its zero default is
	// omitted on encode. Singular message fields always track
	// presence (a set-but-empty submessage is meaningful).
	Singular Cardinality = iota

	// Optional tracks explicit presence: a present field is encoded
	// even when it holds the zero default.
	Optional

	// Repeated is an ordered list. An empty list is omitted on
	// encode and indistinguishable from an absent field.
	Repeated

	// MapOf is a keyed collection. An empty map is omitted on
	// encode. The key kind is recorded in [Field.Key].
	MapOf
)

var cardinalityNames = map[Cardinality]string{
	Singular: "singular",
	Optional: "optional",
	Repeated: "repeated",
	MapOf:    "map",
}

// String returns the lower-case cardinality name.
func (c Cardinality) String() string {
	if name, ok := cardinalityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cardinality(%d)", int(c))
}
