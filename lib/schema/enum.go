// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// EnumValue is one (name, number) pair of an enumeration.
type EnumValue struct {
	// Name is the wire name, conventionally UPPER_SNAKE_CASE
	// (e.g., "ALLOCATION_STATE_ACTIVE").
	Name string

	// Number is the numeric value. Number 0 is the unspecified /
	// default variant by proto3 convention.
	Number int32
}

// Enum is an immutable enumeration descriptor with bidirectional
// name/number lookup. Construct via [NewEnum]; the lookup tables are
// built once and never mutate.
type Enum struct {
	name     string
	values   []EnumValue
	byName   map[string]int32
	byNumber map[int32]string
}

// NewEnum builds an enum descriptor. Names and numbers must each be
// unique, names must be non-empty UPPER_SNAKE_CASE, and one value
// must have number 0 (the proto3 default variant). Malformed enums
// are a build-time error, never a codec-time concern.
func NewEnum(name string, values []EnumValue) (*Enum, error) {
	if name == "" {
		return nil, fmt.Errorf("enum name is empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("enum %s has no values", name)
	}

	enum := &Enum{
		name:     name,
		values:   make([]EnumValue, len(values)),
		byName:   make(map[string]int32, len(values)),
		byNumber: make(map[int32]string, len(values)),
	}
	copy(enum.values, values)

	hasZero := false
	for _, value := range enum.values {
		if err := validateEnumValueName(value.Name); err != nil {
			return nil, fmt.Errorf("enum %s: %w", name, err)
		}
		if _, exists := enum.byName[value.Name]; exists {
			return nil, fmt.Errorf("enum %s: duplicate value name %q", name, value.Name)
		}
		if _, exists := enum.byNumber[value.Number]; exists {
			return nil, fmt.Errorf("enum %s: duplicate value number %d", name, value.Number)
		}
		enum.byName[value.Name] = value.Number
		enum.byNumber[value.Number] = value.Name
		if value.Number == 0 {
			hasZero = true
		}
	}
	if !hasZero {
		return nil, fmt.Errorf("enum %s has no zero value (proto3 requires an unspecified/default variant)", name)
	}

	return enum, nil
}

// validateEnumValueName checks the UPPER_SNAKE_CASE convention: an
// uppercase letter followed by uppercase letters, digits, and
// underscores.
func validateEnumValueName(name string) error {
	if name == "" {
		return fmt.Errorf("enum value name is empty")
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return fmt.Errorf("enum value name %q must start with an uppercase letter", name)
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return fmt.Errorf("enum value name %q has invalid character %q", name, c)
		}
	}
	if strings.Contains(name, "__") {
		return fmt.Errorf("enum value name %q has adjacent underscores", name)
	}
	return nil
}

// Name returns the enum's descriptor name.
func (e *Enum) Name() string {
	return e.name
}

// Values returns the enum's values in declaration order. The returned
// slice is shared; callers must not modify it.
func (e *Enum) Values() []EnumValue {
	return e.values
}

// ValueName returns the registered name for a number. The second
// return is false when the number has no registered variant — the
// encoder treats that as a hard error, never a fabricated string.
func (e *Enum) ValueName(number int32) (string, bool) {
	name, ok := e.byNumber[number]
	return name, ok
}

// ValueNumber returns the registered number for a name. The lookup is
// exact and case-sensitive.
func (e *Enum) ValueNumber(name string) (int32, bool) {
	number, ok := e.byName[name]
	return number, ok
}
