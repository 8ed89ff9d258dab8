// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// enumNumber distinguishes enum values from plain int32 values inside
// a Value.
type enumNumber int32

// Value is one field value of a dynamic message: a scalar, an enum
// number, a nested *Message, a *List, or a *Map. The zero Value is
// "absent" — it reports false from IsValid and marks an unpopulated
// field. Construct values with the typed constructors ([Bool],
// [Int64], [MessageValue], ...).
type Value struct {
	v any
}

// Bool returns a boolean value.
func Bool(value bool) Value { return Value{v: value} }

// Int32 returns a signed 32-bit integer value.
func Int32(value int32) Value { return Value{v: value} }

// Int64 returns a signed 64-bit integer value.
func Int64(value int64) Value { return Value{v: value} }

// Uint32 returns an unsigned 32-bit integer value.
func Uint32(value uint32) Value { return Value{v: value} }

// Uint64 returns an unsigned 64-bit integer value.
func Uint64(value uint64) Value { return Value{v: value} }

// Float returns a floating point value.
func Float(value float64) Value { return Value{v: value} }

// String returns a string value.
func String(value string) Value { return Value{v: value} }

// Bytes returns a byte-string value. The slice is not copied; callers
// must not modify it after handing it to the codec.
func Bytes(value []byte) Value { return Value{v: value} }

// Enum returns an enum value identified by number. Whether the number
// is registered is checked against the enum descriptor at encode
// time, not here.
func Enum(number int32) Value { return Value{v: enumNumber(number)} }

// MessageValue wraps a nested message.
func MessageValue(message *Message) Value { return Value{v: message} }

// ListValue wraps a repeated field's element list.
func ListValue(list *List) Value { return Value{v: list} }

// MapValue wraps a map field's entries.
func MapValue(mapValue *Map) Value { return Value{v: mapValue} }

// IsValid reports whether the value is populated (not absent).
func (v Value) IsValid() bool { return v.v != nil }

// Interface returns the underlying representation: bool, int32,
// int64, uint32, uint64, float64, string, []byte, int32 (for enums),
// *Message, *List, or *Map. Absent values return nil.
func (v Value) Interface() any {
	if number, ok := v.v.(enumNumber); ok {
		return int32(number)
	}
	return v.v
}

// Equal reports deep equality. Bytes compare by content, messages
// compare field-by-field with default materialization (see
// [Message.Equal]), lists element-wise, maps entry-wise ignoring
// insertion order.
func (v Value) Equal(other Value) bool {
	switch value := v.v.(type) {
	case nil:
		return other.v == nil
	case []byte:
		otherBytes, ok := other.v.([]byte)
		return ok && bytes.Equal(value, otherBytes)
	case *Message:
		otherMessage, ok := other.v.(*Message)
		return ok && value.Equal(otherMessage)
	case *List:
		otherList, ok := other.v.(*List)
		return ok && value.equal(otherList)
	case *Map:
		otherMap, ok := other.v.(*Map)
		return ok && value.equal(otherMap)
	default:
		return v.v == other.v
	}
}

// String returns a debug representation. Not part of any wire format.
func (v Value) String() string {
	if v.v == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%v", v.v)
}

// List is an ordered sequence of values for a repeated field.
type List struct {
	values []Value
}

// NewList returns a list holding the given elements.
func NewList(values ...Value) *List {
	list := &List{values: make([]Value, len(values))}
	copy(list.values, values)
	return list
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.values) }

// Get returns the element at index i.
func (l *List) Get(i int) Value { return l.values[i] }

// Append adds an element at the end.
func (l *List) Append(value Value) { l.values = append(l.values, value) }

// Values returns the element slice. The returned slice is shared;
// callers must not modify it.
func (l *List) Values() []Value { return l.values }

func (l *List) equal(other *List) bool {
	if len(l.values) != len(other.values) {
		return false
	}
	for i, value := range l.values {
		if !value.Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// MapEntry is one key/value pair of a map field.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map holds a map field's entries in insertion order. Matching
// ignores order, but re-serialization preserves it so encoded output
// is deterministic for a given decode.
type Map struct {
	entries []MapEntry
	index   map[string]int
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Set inserts or replaces the entry for key. Keys must be bool,
// integer, or string values — the kinds representable as JSON object
// keys.
func (m *Map) Set(key, value Value) error {
	keyString, err := mapKeyString(key)
	if err != nil {
		return err
	}
	if position, exists := m.index[keyString]; exists {
		m.entries[position].Value = value
		return nil
	}
	m.index[keyString] = len(m.entries)
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
	return nil
}

// Get returns the value stored under key.
func (m *Map) Get(key Value) (Value, bool) {
	keyString, err := mapKeyString(key)
	if err != nil {
		return Value{}, false
	}
	position, exists := m.index[keyString]
	if !exists {
		return Value{}, false
	}
	return m.entries[position].Value, true
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the entries in insertion order. The returned slice
// is shared; callers must not modify it.
func (m *Map) Entries() []MapEntry { return m.entries }

func (m *Map) equal(other *Map) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for _, entry := range m.entries {
		otherValue, exists := other.Get(entry.Key)
		if !exists || !entry.Value.Equal(otherValue) {
			return false
		}
	}
	return true
}

// Message is a dynamic message instance: a descriptor plus the
// explicitly populated field values. Fields never written keep proto3
// absence semantics — [Message.Get] materializes type defaults for
// plain singular fields, while presence-tracked fields (optional
// fields, message fields, oneof members) stay absent until set.
type Message struct {
	descriptor *schema.Message
	values     map[string]Value
}

// NewMessage returns an empty message for the given descriptor.
func NewMessage(descriptor *schema.Message) *Message {
	return &Message{
		descriptor: descriptor,
		values:     make(map[string]Value),
	}
}

// Descriptor returns the message's type descriptor.
func (m *Message) Descriptor() *schema.Message {
	return m.descriptor
}

// Set populates a field. The name may be either accepted spelling;
// the value must match the field's type and cardinality. Setting a
// oneof member clears its populated siblings.
func (m *Message) Set(name string, value Value) error {
	field, ok := m.descriptor.ResolveField(name)
	if !ok {
		return fmt.Errorf("message %s has no field %q", m.descriptor.Name(), name)
	}
	if err := checkFieldValue(field, value); err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}
	if field.Oneof != "" {
		group, _ := m.descriptor.OneofByName(field.Oneof)
		for _, member := range group.Fields {
			if member != field.Name {
				delete(m.values, member)
			}
		}
	}
	m.values[field.Name] = value
	return nil
}

// Get returns a field's effective value: the stored value when the
// field is populated, the type default for unpopulated plain singular,
// repeated, and map fields, and the absent Value for unpopulated
// presence-tracked fields.
func (m *Message) Get(name string) Value {
	field, ok := m.descriptor.ResolveField(name)
	if !ok {
		return Value{}
	}
	if value, populated := m.values[field.Name]; populated {
		return value
	}
	return effectiveDefault(field)
}

// Has reports whether the field is explicitly populated.
func (m *Message) Has(name string) bool {
	field, ok := m.descriptor.ResolveField(name)
	if !ok {
		return false
	}
	_, populated := m.values[field.Name]
	return populated
}

// Clear removes a field's value, restoring absence.
func (m *Message) Clear(name string) {
	if field, ok := m.descriptor.ResolveField(name); ok {
		delete(m.values, field.Name)
	}
}

// Equal reports whether two messages of the same descriptor carry the
// same effective content. Plain singular, repeated, and map fields
// compare by effective value (absent equals type default); presence-
// tracked fields compare presence first, so an absent submessage
// never equals a populated-but-empty one.
func (m *Message) Equal(other *Message) bool {
	if other == nil || m.descriptor != other.descriptor {
		return false
	}
	fields := m.descriptor.Fields()
	for i := range fields {
		field := &fields[i]
		mine, minePopulated := m.values[field.Name]
		theirs, theirsPopulated := other.values[field.Name]

		if tracksPresence(field) {
			if minePopulated != theirsPopulated {
				return false
			}
			if minePopulated && !mine.Equal(theirs) {
				return false
			}
			continue
		}

		if !minePopulated {
			mine = effectiveDefault(field)
		}
		if !theirsPopulated {
			theirs = effectiveDefault(field)
		}
		if !mine.Equal(theirs) {
			return false
		}
	}
	return true
}

// tracksPresence reports whether a field distinguishes "absent" from
// "populated with the default": optional fields, singular message
// fields, and oneof members.
func tracksPresence(field *schema.Field) bool {
	if field.Cardinality == schema.Optional || field.Oneof != "" {
		return true
	}
	return field.Cardinality == schema.Singular && field.Type.Kind == schema.KindMessage
}

// effectiveDefault returns the value an unpopulated field decodes to:
// the kind's zero value for plain singular fields, empty collections
// for repeated and map fields, absent for presence-tracked fields.
func effectiveDefault(field *schema.Field) Value {
	if tracksPresence(field) {
		return Value{}
	}
	switch field.Cardinality {
	case schema.Repeated:
		return ListValue(NewList())
	case schema.MapOf:
		return MapValue(NewMap())
	}
	return zeroScalar(field.Type.Kind)
}

// zeroScalar returns the proto3 zero default for a scalar or enum
// kind.
func zeroScalar(kind schema.Kind) Value {
	switch kind {
	case schema.KindBool:
		return Bool(false)
	case schema.KindInt32:
		return Int32(0)
	case schema.KindInt64:
		return Int64(0)
	case schema.KindUint32:
		return Uint32(0)
	case schema.KindUint64:
		return Uint64(0)
	case schema.KindFloat:
		return Float(0)
	case schema.KindString:
		return String("")
	case schema.KindBytes:
		return Bytes(nil)
	case schema.KindEnum:
		return Enum(0)
	}
	return Value{}
}

// checkFieldValue validates a value against a field's cardinality and
// type before it enters the message.
func checkFieldValue(field *schema.Field, value Value) error {
	if !value.IsValid() {
		return fmt.Errorf("cannot set an absent value; use Clear")
	}
	switch field.Cardinality {
	case schema.Repeated:
		list, ok := value.v.(*List)
		if !ok {
			return fmt.Errorf("repeated field requires a List value, got %T", value.v)
		}
		for i, element := range list.values {
			if err := checkSingularValue(field.Type, element); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	case schema.MapOf:
		mapValue, ok := value.v.(*Map)
		if !ok {
			return fmt.Errorf("map field requires a Map value, got %T", value.v)
		}
		for _, entry := range mapValue.entries {
			if err := checkMapKey(field.Key, entry.Key); err != nil {
				return err
			}
			if err := checkSingularValue(field.Type, entry.Value); err != nil {
				return fmt.Errorf("entry %s: %w", entry.Key, err)
			}
		}
	default:
		return checkSingularValue(field.Type, value)
	}
	return nil
}

// checkSingularValue validates a single (non-collection) value
// against a type.
func checkSingularValue(fieldType schema.Type, value Value) error {
	var ok bool
	switch fieldType.Kind {
	case schema.KindBool:
		_, ok = value.v.(bool)
	case schema.KindInt32:
		_, ok = value.v.(int32)
	case schema.KindInt64:
		_, ok = value.v.(int64)
	case schema.KindUint32:
		_, ok = value.v.(uint32)
	case schema.KindUint64:
		_, ok = value.v.(uint64)
	case schema.KindFloat:
		_, ok = value.v.(float64)
	case schema.KindString:
		_, ok = value.v.(string)
	case schema.KindBytes:
		_, ok = value.v.([]byte)
	case schema.KindEnum:
		_, ok = value.v.(enumNumber)
	case schema.KindMessage:
		var message *Message
		message, ok = value.v.(*Message)
		if ok && message.descriptor != fieldType.Message {
			return fmt.Errorf("message value has descriptor %s, want %s",
				message.descriptor.Name(), fieldType.Message.Name())
		}
	}
	if !ok {
		return fmt.Errorf("value %v does not match kind %s", value, fieldType.Kind)
	}
	return nil
}

// checkMapKey validates a map key value against the declared key
// kind.
func checkMapKey(keyKind schema.Kind, key Value) error {
	var ok bool
	switch keyKind {
	case schema.KindBool:
		_, ok = key.v.(bool)
	case schema.KindInt32:
		_, ok = key.v.(int32)
	case schema.KindInt64:
		_, ok = key.v.(int64)
	case schema.KindUint32:
		_, ok = key.v.(uint32)
	case schema.KindUint64:
		_, ok = key.v.(uint64)
	case schema.KindString:
		_, ok = key.v.(string)
	}
	if !ok {
		return fmt.Errorf("map key %v does not match key kind %s", key, keyKind)
	}
	return nil
}
