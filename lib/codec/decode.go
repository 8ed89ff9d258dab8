// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// UnmarshalOptions configures decoding.
type UnmarshalOptions struct {
	// MaxDepth bounds message nesting. Zero means [DefaultMaxDepth].
	MaxDepth int
}

// Unmarshal decodes a JSON object with default options.
func Unmarshal(data []byte, descriptor *schema.Message) (*Message, error) {
	return UnmarshalOptions{}.Unmarshal(data, descriptor)
}

// Unmarshal decodes a JSON object against a message descriptor.
// Decoding walks the input in its own key order, resolves each key
// through the descriptor's two-alias lookup, and converts tokens
// through the scalar codec. It is all-or-nothing: the first error
// halts decoding and no partial message is returned. Fields absent
// from the input decode to their type defaults — no field is ever
// "required" at this layer.
func (o UnmarshalOptions) Unmarshal(data []byte, descriptor *schema.Message) (*Message, error) {
	if descriptor == nil {
		return nil, fmt.Errorf("codec: unmarshaling with nil descriptor")
	}
	maxDepth := o.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	tokens := json.NewDecoder(bytes.NewReader(data))
	// Numbers surface as json.Number so 64-bit values never round
	// through float64.
	tokens.UseNumber()

	decoder := &decoder{tokens: tokens, maxDepth: maxDepth}
	message, err := decoder.decodeMessage(descriptor, "", 1)
	if err != nil {
		return nil, err
	}

	if _, err := tokens.Token(); err != io.EOF {
		return nil, fmt.Errorf("codec: trailing data after message object")
	}
	return message, nil
}

type decoder struct {
	tokens   *json.Decoder
	maxDepth int
}

// next reads one JSON token, wrapping syntax errors.
func (d *decoder) next() (any, error) {
	token, err := d.tokens.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("codec: unexpected end of input")
		}
		return nil, fmt.Errorf("codec: parsing JSON: %w", err)
	}
	return token, nil
}

// decodeMessage consumes one JSON object and builds a message.
func (d *decoder) decodeMessage(descriptor *schema.Message, path string, depth int) (*Message, error) {
	token, err := d.next()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errorf(TypeMismatch, path, "expected object, got %s", tokenShape(token))
	}
	return d.decodeMessageBody(descriptor, path, depth)
}

// decodeMessageBody decodes the field list after the opening brace
// has been consumed.
func (d *decoder) decodeMessageBody(descriptor *schema.Message, path string, depth int) (*Message, error) {
	if depth > d.maxDepth {
		return nil, errorf(NestingTooDeep, path, "message nesting exceeds %d levels", d.maxDepth)
	}

	message := NewMessage(descriptor)
	seen := make(map[string]bool)
	oneofSeen := make(map[string]string)

	for d.tokens.More() {
		token, err := d.next()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			// The json.Decoder guarantees object keys are strings.
			return nil, fmt.Errorf("codec: parsing JSON: non-string object key")
		}

		field, resolved := descriptor.ResolveField(key)
		if !resolved {
			return nil, errorf(UnknownField, joinPath(path, key),
				"message %s has no field spelled %q", descriptor.Name(), key)
		}
		fieldPath := joinPath(path, field.Name)

		if seen[field.Name] {
			return nil, errorf(DuplicateField, fieldPath,
				"field populated twice (both %q and %q spellings are accepted)",
				field.Name, field.JSONName)
		}
		seen[field.Name] = true

		if field.Oneof != "" {
			if previous, populated := oneofSeen[field.Oneof]; populated {
				return nil, errorf(DuplicateField, fieldPath,
					"oneof %s already has member %s populated", field.Oneof, previous)
			}
			oneofSeen[field.Oneof] = field.Name
		}

		value, present, err := d.decodeField(field, fieldPath, depth)
		if err != nil {
			return nil, err
		}
		if present {
			message.values[field.Name] = value
		}
	}

	// Consume the closing brace.
	if _, err := d.next(); err != nil {
		return nil, err
	}

	materializeDefaults(message)
	return message, nil
}

// materializeDefaults fills every field the input omitted with its
// type default: zero scalars, empty lists and maps. Presence-tracked
// fields stay absent — an omitted optional submessage decodes to
// "unset", not to an empty message.
func materializeDefaults(message *Message) {
	fields := message.descriptor.Fields()
	for i := range fields {
		field := &fields[i]
		if _, populated := message.values[field.Name]; populated {
			continue
		}
		if defaultValue := effectiveDefault(field); defaultValue.IsValid() {
			message.values[field.Name] = defaultValue
		}
	}
}

// decodeField decodes one field's value. A JSON null is accepted for
// any field and decodes as "not present" (proto3 JSON semantics); the
// key still counts for duplicate detection.
func (d *decoder) decodeField(field *schema.Field, path string, depth int) (Value, bool, error) {
	token, err := d.next()
	if err != nil {
		return Value{}, false, err
	}
	if token == nil {
		return Value{}, false, nil
	}

	var value Value
	switch field.Cardinality {
	case schema.Repeated:
		value, err = d.decodeList(field, token, path, depth)
	case schema.MapOf:
		value, err = d.decodeMap(field, token, path, depth)
	default:
		value, err = d.decodeSingular(field.Type, token, path, depth)
	}
	if err != nil {
		return Value{}, false, err
	}
	return value, true, nil
}

// decodeSingular decodes a scalar, enum, or nested message from the
// already-read leading token.
func (d *decoder) decodeSingular(fieldType schema.Type, token any, path string, depth int) (Value, error) {
	if fieldType.Kind == schema.KindMessage {
		if delim, ok := token.(json.Delim); !ok || delim != '{' {
			return Value{}, errorf(TypeMismatch, path, "expected object, got %s", tokenShape(token))
		}
		nested, err := d.decodeMessageBody(fieldType.Message, path, depth+1)
		if err != nil {
			return Value{}, err
		}
		return MessageValue(nested), nil
	}

	value, codecError := decodeScalarToken(fieldType, token, path)
	if codecError != nil {
		return Value{}, codecError
	}
	return value, nil
}

// decodeList decodes a repeated field from its leading token, which
// must open an array.
func (d *decoder) decodeList(field *schema.Field, token any, path string, depth int) (Value, error) {
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return Value{}, errorf(TypeMismatch, path, "expected array, got %s", tokenShape(token))
	}

	list := NewList()
	for d.tokens.More() {
		elementPath := path + "[" + strconv.Itoa(list.Len()) + "]"
		elementToken, err := d.next()
		if err != nil {
			return Value{}, err
		}
		if elementToken == nil {
			return Value{}, errorf(TypeMismatch, elementPath, "null is not a valid list element")
		}
		element, err := d.decodeSingular(field.Type, elementToken, elementPath, depth)
		if err != nil {
			return Value{}, err
		}
		list.Append(element)
	}

	// Consume the closing bracket.
	if _, err := d.next(); err != nil {
		return Value{}, err
	}
	return ListValue(list), nil
}

// decodeMap decodes a map field from its leading token, which must
// open an object. Keys are parsed per the declared key kind; repeated
// keys are a DuplicateField error, not last-one-wins.
func (d *decoder) decodeMap(field *schema.Field, token any, path string, depth int) (Value, error) {
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return Value{}, errorf(TypeMismatch, path, "expected object, got %s", tokenShape(token))
	}

	mapValue := NewMap()
	for d.tokens.More() {
		keyToken, err := d.next()
		if err != nil {
			return Value{}, err
		}
		rawKey, ok := keyToken.(string)
		if !ok {
			return Value{}, fmt.Errorf("codec: parsing JSON: non-string object key")
		}
		entryPath := path + "[" + strconv.Quote(rawKey) + "]"

		key, codecError := parseMapKey(field.Key, rawKey, entryPath)
		if codecError != nil {
			return Value{}, codecError
		}
		if _, exists := mapValue.Get(key); exists {
			return Value{}, errorf(DuplicateField, entryPath, "map key %q repeated", rawKey)
		}

		valueToken, err := d.next()
		if err != nil {
			return Value{}, err
		}
		if valueToken == nil {
			return Value{}, errorf(TypeMismatch, entryPath, "null is not a valid map value")
		}
		value, err := d.decodeSingular(field.Type, valueToken, entryPath, depth)
		if err != nil {
			return Value{}, err
		}
		if err := mapValue.Set(key, value); err != nil {
			return Value{}, errorf(TypeMismatch, entryPath, "%v", err)
		}
	}

	// Consume the closing brace.
	if _, err := d.next(); err != nil {
		return Value{}, err
	}
	return MapValue(mapValue), nil
}
