// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// DefaultMaxDepth is the message nesting bound applied when
// MarshalOptions or UnmarshalOptions leave MaxDepth zero. Deep enough
// for any sane schema, small enough to fail adversarial input before
// stack growth matters.
const DefaultMaxDepth = 100

// MarshalOptions configures encoding.
type MarshalOptions struct {
	// MaxDepth bounds message nesting. Zero means [DefaultMaxDepth].
	MaxDepth int
}

// Marshal encodes a message with default options.
func Marshal(message *Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(message)
}

// Marshal encodes a message into a JSON object. Fields are emitted in
// descriptor order, so the same message content always produces
// byte-identical output — golden-file comparisons are stable. A
// message with every field at its type default encodes to "{}".
func (o MarshalOptions) Marshal(message *Message) ([]byte, error) {
	if message == nil {
		return nil, fmt.Errorf("codec: marshaling nil message")
	}
	maxDepth := o.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	encoder := &encoder{maxDepth: maxDepth}
	buf, err := encoder.appendMessage(make([]byte, 0, 256), message, "", 1)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

type encoder struct {
	maxDepth int
}

// appendMessage emits one message as a JSON object.
func (e *encoder) appendMessage(buf []byte, message *Message, path string, depth int) ([]byte, error) {
	if depth > e.maxDepth {
		return nil, errorf(NestingTooDeep, path, "message nesting exceeds %d levels", e.maxDepth)
	}

	buf = append(buf, '{')
	first := true
	fields := message.descriptor.Fields()
	for i := range fields {
		field := &fields[i]
		value, populated := message.values[field.Name]
		if !e.shouldEmit(field, value, populated) {
			continue
		}

		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = appendJSONString(buf, field.JSONName)
		buf = append(buf, ':')

		var err error
		buf, err = e.appendField(buf, field, value, joinPath(path, field.Name), depth)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}

// shouldEmit applies the field-presence rules: presence-tracked
// fields (optional, message-typed, oneof members) are emitted exactly
// when populated — even all-default, because presence itself is
// meaningful. Everything else is omitted at its default: zero
// scalars, enum 0, empty strings and bytes, empty lists and maps.
func (e *encoder) shouldEmit(field *schema.Field, value Value, populated bool) bool {
	if !populated {
		return false
	}
	if tracksPresence(field) {
		return true
	}
	switch field.Cardinality {
	case schema.Repeated:
		return value.v.(*List).Len() > 0
	case schema.MapOf:
		return value.v.(*Map).Len() > 0
	}
	return !value.Equal(zeroScalar(field.Type.Kind))
}

// appendField emits one populated field value.
func (e *encoder) appendField(buf []byte, field *schema.Field, value Value, path string, depth int) ([]byte, error) {
	switch field.Cardinality {
	case schema.Repeated:
		return e.appendList(buf, field, value.v.(*List), path, depth)
	case schema.MapOf:
		return e.appendMap(buf, field, value.v.(*Map), path, depth)
	default:
		return e.appendSingular(buf, field.Type, value, path, depth)
	}
}

// appendSingular emits a scalar, enum, or nested message value.
func (e *encoder) appendSingular(buf []byte, fieldType schema.Type, value Value, path string, depth int) ([]byte, error) {
	if fieldType.Kind == schema.KindMessage {
		return e.appendMessage(buf, value.v.(*Message), path, depth+1)
	}
	return appendScalar(buf, fieldType, value, path)
}

// appendList emits a repeated field as a JSON array.
func (e *encoder) appendList(buf []byte, field *schema.Field, list *List, path string, depth int) ([]byte, error) {
	buf = append(buf, '[')
	for i, element := range list.values {
		if i > 0 {
			buf = append(buf, ',')
		}
		var err error
		buf, err = e.appendSingular(buf, field.Type, element, path+"["+strconv.Itoa(i)+"]", depth)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, ']'), nil
}

// appendMap emits a map field as a JSON object in insertion order.
// Keys are always JSON strings; 64-bit integer values keep the
// decimal-string convention inside maps.
func (e *encoder) appendMap(buf []byte, field *schema.Field, mapValue *Map, path string, depth int) ([]byte, error) {
	buf = append(buf, '{')
	for i, entry := range mapValue.entries {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyText, err := mapKeyString(entry.Key)
		if err != nil {
			return nil, errorf(TypeMismatch, path, "%v", err)
		}
		buf = appendJSONString(buf, keyText)
		buf = append(buf, ':')
		buf, err = e.appendSingular(buf, field.Type, entry.Value, path+"["+strconv.Quote(keyText)+"]", depth)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}
