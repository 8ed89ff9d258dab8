// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
)

// ErrorKind classifies codec failures. Callers branch on the kind via
// [IsKind] or errors.As rather than matching message text.
type ErrorKind int

const (
	// UnknownField: a JSON key resolved to no field under either
	// accepted spelling. Decoding is strict; unknown keys are never
	// silently ignored.
	UnknownField ErrorKind = iota + 1

	// DuplicateField: the same canonical field was populated twice
	// in one object (possibly once under each alias), two members
	// of one oneof group were populated, or a map field repeated a
	// key.
	DuplicateField

	// InvalidEnumValue: an enum token was neither a registered name
	// (exact, case-sensitive) nor a registered number.
	InvalidEnumValue

	// InvalidNumericString: an integer token failed to parse as a
	// decimal value in the field's range.
	InvalidNumericString

	// InvalidBase64: a bytes token was not valid padded standard
	// base64.
	InvalidBase64

	// TypeMismatch: the JSON shape did not match the field (object
	// where an array was expected, string where a boolean was
	// expected, and so on).
	TypeMismatch

	// UnregisteredEnumNumber: encoding found an enum field holding
	// a number with no registered name. Unknown enum numbers are
	// never given a fabricated string.
	UnregisteredEnumNumber

	// NestingTooDeep: message nesting exceeded the configured depth
	// bound.
	NestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	UnknownField:           "unknown field",
	DuplicateField:         "duplicate field",
	InvalidEnumValue:       "invalid enum value",
	InvalidNumericString:   "invalid numeric string",
	InvalidBase64:          "invalid base64",
	TypeMismatch:           "type mismatch",
	UnregisteredEnumNumber: "unregistered enum number",
	NestingTooDeep:         "nesting too deep",
}

// String returns the human-readable kind name.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is the uniform failure type surfaced by Marshal and
// Unmarshal. Callers can extract it with errors.As:
//
//	var codecErr *codec.Error
//	if errors.As(err, &codecErr) {
//	    if codecErr.Kind == codec.UnknownField { ... }
//	}
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path locates the failing field from the message root, in
	// dotted form with [index] and [key] segments (for example
	// `pricing.rate_per_hour` or `usage_rates["gpu"]`). Empty for
	// failures at the root.
	Path string

	// Detail describes the offending token or value.
	Detail string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("codec: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("codec: %s at %s: %s", e.Kind, e.Path, e.Detail)
}

// IsKind checks whether err is a *Error with the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var codecError *Error
	if errors.As(err, &codecError) {
		return codecError.Kind == kind
	}
	return false
}

// errorf builds a *Error with a formatted detail.
func errorf(kind ErrorKind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// joinPath appends a field name to a dotted path.
func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
