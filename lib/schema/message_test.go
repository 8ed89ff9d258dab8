// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "testing"

func testAllocationMessage(t *testing.T) *Message {
	t.Helper()
	pricing, err := NewMessage("PricingInfo", []Field{
		{Name: "rate_per_hour", Type: Type{Kind: KindUint64}},
		{Name: "currency", Type: Type{Kind: KindString}},
	})
	if err != nil {
		t.Fatalf("NewMessage(PricingInfo): %v", err)
	}

	message, err := NewMessage("Allocation", []Field{
		{Name: "allocation_id", Type: Type{Kind: KindString}},
		{Name: "sequence", Type: Type{Kind: KindUint64}},
		{Name: "state", Type: Type{Kind: KindEnum, Enum: testAllocationState(t)}},
		{Name: "pricing", Type: Type{Kind: KindMessage, Message: pricing}, Cardinality: Optional},
		{Name: "tags", Type: Type{Kind: KindString}, Cardinality: Repeated},
		{Name: "usage_rates", Type: Type{Kind: KindUint64}, Cardinality: MapOf, Key: KindString},
		{Name: "order_ref", Type: Type{Kind: KindString}, Oneof: "target"},
		{Name: "listing_ref", Type: Type{Kind: KindString}, Oneof: "target"},
	})
	if err != nil {
		t.Fatalf("NewMessage(Allocation): %v", err)
	}
	return message
}

func TestResolveFieldAliases(t *testing.T) {
	message := testAllocationMessage(t)

	// Both the canonical and the JSON spelling resolve to the same field.
	canonical, ok := message.ResolveField("allocation_id")
	if !ok {
		t.Fatal("canonical spelling did not resolve")
	}
	camel, ok := message.ResolveField("allocationId")
	if !ok {
		t.Fatal("JSON spelling did not resolve")
	}
	if canonical != camel {
		t.Error("the two spellings resolved to different fields")
	}
	if canonical.JSONName != "allocationId" {
		t.Errorf("JSONName = %q, want allocationId", canonical.JSONName)
	}

	// Strict two-alias lookup: near-miss spellings do not resolve.
	for _, miss := range []string{"AllocationId", "allocation-id", "ALLOCATION_ID", "allocationid", "bogus"} {
		if _, ok := message.ResolveField(miss); ok {
			t.Errorf("spelling %q resolved, want miss", miss)
		}
	}
}

func TestMessageOneofs(t *testing.T) {
	message := testAllocationMessage(t)

	oneofs := message.Oneofs()
	if len(oneofs) != 1 {
		t.Fatalf("Oneofs() has %d groups, want 1", len(oneofs))
	}
	group := oneofs[0]
	if group.Name != "target" {
		t.Errorf("group name = %q, want target", group.Name)
	}
	if len(group.Fields) != 2 || group.Fields[0] != "order_ref" || group.Fields[1] != "listing_ref" {
		t.Errorf("group fields = %v, want [order_ref listing_ref]", group.Fields)
	}

	if _, ok := message.OneofByName("target"); !ok {
		t.Error("OneofByName(target) missed")
	}
	if _, ok := message.OneofByName("absent"); ok {
		t.Error("OneofByName(absent) resolved")
	}
}

func TestNewMessageValidation(t *testing.T) {
	enum := testAllocationState(t)
	tests := []struct {
		name   string
		fields []Field
	}{
		{"duplicate canonical name", []Field{
			{Name: "order_id", Type: Type{Kind: KindString}},
			{Name: "order_id", Type: Type{Kind: KindInt64}},
		}},
		{"enum kind without descriptor", []Field{
			{Name: "state", Type: Type{Kind: KindEnum}},
		}},
		{"message kind without descriptor", []Field{
			{Name: "pricing", Type: Type{Kind: KindMessage}, Cardinality: Optional},
		}},
		{"scalar with stray reference", []Field{
			{Name: "state", Type: Type{Kind: KindInt32, Enum: enum}},
		}},
		{"float map key", []Field{
			{Name: "rates", Type: Type{Kind: KindString}, Cardinality: MapOf, Key: KindFloat},
		}},
		{"map key on plain field", []Field{
			{Name: "rates", Type: Type{Kind: KindString}, Key: KindString},
		}},
		{"repeated oneof member", []Field{
			{Name: "refs", Type: Type{Kind: KindString}, Cardinality: Repeated, Oneof: "target"},
		}},
		{"bad field name", []Field{
			{Name: "OrderId", Type: Type{Kind: KindString}},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewMessage("Broken", test.fields); err == nil {
				t.Errorf("NewMessage accepted %s", test.name)
			}
		})
	}
}

func TestDeclareResolveCycle(t *testing.T) {
	// Self-referencing message, built with the two-phase API.
	node := Declare("TreeNode")
	err := node.Resolve([]Field{
		{Name: "label", Type: Type{Kind: KindString}},
		{Name: "children", Type: Type{Kind: KindMessage, Message: node}, Cardinality: Repeated},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	field, ok := node.ResolveField("children")
	if !ok {
		t.Fatal("children did not resolve")
	}
	if field.Type.Message != node {
		t.Error("self reference lost during resolution")
	}

	// Resolving twice is an error.
	if err := node.Resolve(nil); err == nil {
		t.Error("second Resolve succeeded, want error")
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	message := testAllocationMessage(t)
	enum := testAllocationState(t)

	if err := registry.RegisterMessage(message); err != nil {
		t.Fatalf("RegisterMessage: %v", err)
	}
	if err := registry.RegisterEnum(enum); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}

	if _, ok := registry.Message("Allocation"); !ok {
		t.Error("Message(Allocation) missed")
	}
	if _, ok := registry.Enum("AllocationState"); !ok {
		t.Error("Enum(AllocationState) missed")
	}

	// Names are unique across messages and enums.
	if err := registry.RegisterMessage(message); err == nil {
		t.Error("duplicate message registration succeeded")
	}
	duplicate, err := NewEnum("Allocation", []EnumValue{{Name: "X_UNSPECIFIED", Number: 0}})
	if err != nil {
		t.Fatalf("NewEnum: %v", err)
	}
	if err := registry.RegisterEnum(duplicate); err == nil {
		t.Error("enum reusing a message name registered successfully")
	}

	// Unresolved messages are rejected.
	if err := registry.RegisterMessage(Declare("Pending")); err == nil {
		t.Error("unresolved message registered successfully")
	}
}
