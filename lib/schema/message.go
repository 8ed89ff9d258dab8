// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// Field describes one field of a message. The zero value is not a
// valid field; fields are validated and canonicalized by
// [Message.Resolve].
type Field struct {
	// Name is the canonical snake_case field name. Unique within the
	// message.
	Name string

	// JSONName is the lowerCamelCase wire spelling. Always the
	// [JSONName] transform of Name; any value supplied at
	// construction is overwritten.
	JSONName string

	// Type is the field's value type. For MapOf cardinality it is
	// the map's value type.
	Type Type

	// Cardinality is how many values the field holds.
	Cardinality Cardinality

	// Key is the map key kind. Set only for MapOf cardinality.
	Key Kind

	// Oneof names the mutually exclusive group this field belongs
	// to, or "" for a plain field. Members of one group share the
	// group name; at most one member may be populated at a time.
	Oneof string
}

// Oneof is a group of mutually exclusive fields.
type Oneof struct {
	// Name is the group name, unique within the message.
	Name string

	// Fields are the canonical names of the member fields, in
	// declaration order.
	Fields []string
}

// Message is an immutable message descriptor: an ordered field list
// with O(1) lookup by canonical name and by JSON name. Construct via
// [NewMessage], or via [Declare] plus [Message.Resolve] for mutually
// recursive schemas. Once resolved, a Message never mutates and is
// safe for unlimited concurrent use.
type Message struct {
	name     string
	resolved bool
	fields   []Field
	oneofs   []Oneof

	// byAlias maps both accepted spellings (canonical snake_case and
	// derived lowerCamelCase) to the field index. Built once at
	// resolve time — the codec never recomputes name transforms.
	byAlias map[string]int

	// oneofIndex maps group name to its position in oneofs.
	oneofIndex map[string]int
}

// NewMessage builds and resolves a message descriptor in one step.
// Use [Declare] and [Message.Resolve] instead when messages reference
// each other cyclically.
func NewMessage(name string, fields []Field) (*Message, error) {
	message := Declare(name)
	if err := message.Resolve(fields); err != nil {
		return nil, err
	}
	return message, nil
}

// Declare creates an empty, unresolved message descriptor. Unresolved
// descriptors exist so that mutually recursive schemas can be built:
// declare every message first, then resolve each with fields that may
// reference any declared message. An unresolved descriptor resolves
// no fields and is rejected by [Registry.RegisterMessage].
func Declare(name string) *Message {
	return &Message{name: name}
}

// Resolve sets the field list. It may be called exactly once; the
// descriptor is immutable afterwards. Field validation happens here:
// name shape, alias uniqueness, type/reference consistency, map key
// kinds, and oneof membership rules.
func (m *Message) Resolve(fields []Field) error {
	if m.resolved {
		return fmt.Errorf("message %s: already resolved", m.name)
	}
	if m.name == "" {
		return fmt.Errorf("message name is empty")
	}

	m.fields = make([]Field, len(fields))
	copy(m.fields, fields)
	m.byAlias = make(map[string]int, 2*len(fields))
	m.oneofIndex = make(map[string]int)

	for i := range m.fields {
		field := &m.fields[i]
		if err := m.validateField(field); err != nil {
			return fmt.Errorf("message %s: %w", m.name, err)
		}

		field.JSONName = JSONName(field.Name)
		for _, alias := range []string{field.Name, field.JSONName} {
			if previous, exists := m.byAlias[alias]; exists {
				if previous == i {
					// Canonical and JSON spelling coincide
					// (no underscores); one entry suffices.
					continue
				}
				return fmt.Errorf("message %s: field name %q collides with field %q",
					m.name, alias, m.fields[previous].Name)
			}
			m.byAlias[alias] = i
		}

		if field.Oneof != "" {
			index, exists := m.oneofIndex[field.Oneof]
			if !exists {
				index = len(m.oneofs)
				m.oneofIndex[field.Oneof] = index
				m.oneofs = append(m.oneofs, Oneof{Name: field.Oneof})
			}
			m.oneofs[index].Fields = append(m.oneofs[index].Fields, field.Name)
		}
	}

	m.resolved = true
	return nil
}

// validateField checks a single field declaration.
func (m *Message) validateField(field *Field) error {
	if err := validateFieldName(field.Name); err != nil {
		return err
	}
	if err := field.Type.validate(); err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}

	switch field.Cardinality {
	case Singular, Optional, Repeated:
		if field.Key != KindInvalid {
			return fmt.Errorf("field %s: map key kind set on non-map field", field.Name)
		}
	case MapOf:
		if !field.Key.validMapKey() {
			return fmt.Errorf("field %s: invalid map key kind %s (keys must be bool, integer, or string)",
				field.Name, field.Key)
		}
	default:
		return fmt.Errorf("field %s: invalid cardinality %s", field.Name, field.Cardinality)
	}

	if field.Oneof != "" && field.Cardinality != Singular {
		return fmt.Errorf("field %s: oneof member must be singular, got %s",
			field.Name, field.Cardinality)
	}
	return nil
}

// Name returns the message's descriptor name.
func (m *Message) Name() string {
	return m.name
}

// Fields returns the fields in declaration order. The returned slice
// is shared; callers must not modify it.
func (m *Message) Fields() []Field {
	return m.fields
}

// Oneofs returns the oneof groups in first-appearance order. The
// returned slice is shared; callers must not modify it.
func (m *Message) Oneofs() []Oneof {
	return m.oneofs
}

// OneofByName returns the oneof group with the given name.
func (m *Message) OneofByName(name string) (Oneof, bool) {
	index, ok := m.oneofIndex[name]
	if !ok {
		return Oneof{}, false
	}
	return m.oneofs[index], true
}

// ResolveField maps an input key to its field descriptor. Exactly two
// spellings resolve: the canonical snake_case name and its derived
// lowerCamelCase JSON name. The lookup is case-sensitive; any other
// spelling returns false.
func (m *Message) ResolveField(key string) (*Field, bool) {
	index, ok := m.byAlias[key]
	if !ok {
		return nil, false
	}
	return &m.fields[index], true
}
