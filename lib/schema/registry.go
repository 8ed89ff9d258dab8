// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// Registry holds the descriptors of one schema family, keyed by
// descriptor name. Build it once at process start (registration is
// not synchronized), then share it freely: lookups are O(1) map reads
// against immutable descriptors.
type Registry struct {
	messages     map[string]*Message
	enums        map[string]*Enum
	messageOrder []string
	enumOrder    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		messages: make(map[string]*Message),
		enums:    make(map[string]*Enum),
	}
}

// RegisterMessage adds a resolved message descriptor. Registering an
// unresolved descriptor or reusing a name (across messages and enums)
// is an error.
func (r *Registry) RegisterMessage(message *Message) error {
	if message == nil {
		return fmt.Errorf("registering nil message")
	}
	if !message.resolved {
		return fmt.Errorf("registering unresolved message %s", message.Name())
	}
	if err := r.checkName(message.Name()); err != nil {
		return err
	}
	r.messages[message.Name()] = message
	r.messageOrder = append(r.messageOrder, message.Name())
	return nil
}

// RegisterEnum adds an enum descriptor. Reusing a name (across
// messages and enums) is an error.
func (r *Registry) RegisterEnum(enum *Enum) error {
	if enum == nil {
		return fmt.Errorf("registering nil enum")
	}
	if err := r.checkName(enum.Name()); err != nil {
		return err
	}
	r.enums[enum.Name()] = enum
	r.enumOrder = append(r.enumOrder, enum.Name())
	return nil
}

// checkName rejects names already taken by a message or enum.
func (r *Registry) checkName(name string) error {
	if name == "" {
		return fmt.Errorf("registering descriptor with empty name")
	}
	if _, exists := r.messages[name]; exists {
		return fmt.Errorf("descriptor name %q already registered as a message", name)
	}
	if _, exists := r.enums[name]; exists {
		return fmt.Errorf("descriptor name %q already registered as an enum", name)
	}
	return nil
}

// Message returns the message descriptor with the given name.
func (r *Registry) Message(name string) (*Message, bool) {
	message, ok := r.messages[name]
	return message, ok
}

// Enum returns the enum descriptor with the given name.
func (r *Registry) Enum(name string) (*Enum, bool) {
	enum, ok := r.enums[name]
	return enum, ok
}

// Messages returns all message descriptors in registration order.
func (r *Registry) Messages() []*Message {
	result := make([]*Message, len(r.messageOrder))
	for i, name := range r.messageOrder {
		result[i] = r.messages[name]
	}
	return result
}

// Enums returns all enum descriptors in registration order.
func (r *Registry) Enums() []*Enum {
	result := make([]*Enum, len(r.enumOrder))
	for i, name := range r.enumOrder {
		result[i] = r.enums[name]
	}
	return result
}
