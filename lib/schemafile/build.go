// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"fmt"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// scalarKinds maps document type names onto scalar kinds. Any other
// type name must match an enum or message declared in the document.
var scalarKinds = map[string]schema.Kind{
	"bool":   schema.KindBool,
	"int32":  schema.KindInt32,
	"int64":  schema.KindInt64,
	"uint32": schema.KindUint32,
	"uint64": schema.KindUint64,
	"float":  schema.KindFloat,
	"string": schema.KindString,
	"bytes":  schema.KindBytes,
}

// Build compiles a document into a registry. Message fields may refer
// to any message or enum declared anywhere in the same document,
// including the message itself: all messages are declared first and
// their fields resolved in a second pass.
func Build(document *Document) (*schema.Registry, error) {
	enums := make(map[string]*schema.Enum, len(document.Enums))
	orderedEnums := make([]*schema.Enum, 0, len(document.Enums))
	for _, enumDef := range document.Enums {
		if _, exists := enums[enumDef.Name]; exists {
			return nil, fmt.Errorf("enum %q declared twice", enumDef.Name)
		}
		values := make([]schema.EnumValue, len(enumDef.Values))
		for i, valueDef := range enumDef.Values {
			values[i] = schema.EnumValue{Name: valueDef.Name, Number: valueDef.Number}
		}
		enum, err := schema.NewEnum(enumDef.Name, values)
		if err != nil {
			return nil, fmt.Errorf("enum %q: %w", enumDef.Name, err)
		}
		enums[enumDef.Name] = enum
		orderedEnums = append(orderedEnums, enum)
	}

	// First pass: declare every message so fields can refer forward
	// and cyclically.
	messages := make(map[string]*schema.Message, len(document.Messages))
	orderedMessages := make([]*schema.Message, 0, len(document.Messages))
	for _, messageDef := range document.Messages {
		if _, exists := messages[messageDef.Name]; exists {
			return nil, fmt.Errorf("message %q declared twice", messageDef.Name)
		}
		if _, exists := enums[messageDef.Name]; exists {
			return nil, fmt.Errorf("%q declared as both enum and message", messageDef.Name)
		}
		declared := schema.Declare(messageDef.Name)
		messages[messageDef.Name] = declared
		orderedMessages = append(orderedMessages, declared)
	}

	// Second pass: resolve fields against the full name space.
	for i, messageDef := range document.Messages {
		fields := make([]schema.Field, len(messageDef.Fields))
		for j, fieldDef := range messageDef.Fields {
			field, err := buildField(&fieldDef, enums, messages)
			if err != nil {
				return nil, fmt.Errorf("message %q field %q: %w",
					messageDef.Name, fieldDef.Name, err)
			}
			fields[j] = field
		}
		if err := orderedMessages[i].Resolve(fields); err != nil {
			return nil, fmt.Errorf("message %q: %w", messageDef.Name, err)
		}
	}

	registry := schema.NewRegistry()
	for _, enum := range orderedEnums {
		if err := registry.RegisterEnum(enum); err != nil {
			return nil, err
		}
	}
	for _, message := range orderedMessages {
		if err := registry.RegisterMessage(message); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// buildField translates one field declaration, resolving its type name
// and checking the cardinality markers for consistency.
func buildField(def *FieldDef, enums map[string]*schema.Enum, messages map[string]*schema.Message) (schema.Field, error) {
	fieldType, err := resolveType(def.Type, enums, messages)
	if err != nil {
		return schema.Field{}, err
	}

	cardinality := schema.Singular
	markers := 0
	if def.Optional {
		cardinality = schema.Optional
		markers++
	}
	if def.Repeated {
		cardinality = schema.Repeated
		markers++
	}
	if def.MapKey != "" {
		cardinality = schema.MapOf
		markers++
	}
	if markers > 1 {
		return schema.Field{}, fmt.Errorf("optional, repeated, and map_key are mutually exclusive")
	}
	if def.Oneof != "" && markers > 0 {
		return schema.Field{}, fmt.Errorf("oneof member must be a plain singular field")
	}

	var keyKind schema.Kind
	if def.MapKey != "" {
		kind, ok := scalarKinds[def.MapKey]
		if !ok {
			return schema.Field{}, fmt.Errorf("unknown map key kind %q", def.MapKey)
		}
		keyKind = kind
	}

	return schema.Field{
		Name:        def.Name,
		Type:        fieldType,
		Cardinality: cardinality,
		Key:         keyKind,
		Oneof:       def.Oneof,
	}, nil
}

// resolveType maps a document type name onto a schema type: a scalar
// kind, or a reference to a declared enum or message.
func resolveType(name string, enums map[string]*schema.Enum, messages map[string]*schema.Message) (schema.Type, error) {
	if kind, ok := scalarKinds[name]; ok {
		return schema.Type{Kind: kind}, nil
	}
	if enum, ok := enums[name]; ok {
		return schema.Type{Kind: schema.KindEnum, Enum: enum}, nil
	}
	if message, ok := messages[name]; ok {
		return schema.Type{Kind: schema.KindMessage, Message: message}, nil
	}
	return schema.Type{}, fmt.Errorf("unknown type %q", name)
}
