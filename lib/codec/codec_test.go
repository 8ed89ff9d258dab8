// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"testing"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// testSchema is the descriptor set shared by the codec tests: a
// marketplace allocation message exercising every field shape the
// codec supports.
type testSchema struct {
	state      *schema.Enum
	pricing    *schema.Message
	allocation *schema.Message
}

func newTestSchema(t *testing.T) *testSchema {
	t.Helper()

	state, err := schema.NewEnum("AllocationState", []schema.EnumValue{
		{Name: "ALLOCATION_STATE_UNSPECIFIED", Number: 0},
		{Name: "ALLOCATION_STATE_PENDING", Number: 1},
		{Name: "ALLOCATION_STATE_ACTIVE", Number: 4},
		{Name: "ALLOCATION_STATE_RELEASED", Number: 5},
	})
	if err != nil {
		t.Fatalf("NewEnum: %v", err)
	}

	pricing, err := schema.NewMessage("PricingInfo", []schema.Field{
		{Name: "rate_per_hour", Type: schema.Type{Kind: schema.KindUint64}},
		{Name: "currency", Type: schema.Type{Kind: schema.KindString}},
	})
	if err != nil {
		t.Fatalf("NewMessage(PricingInfo): %v", err)
	}

	allocation, err := schema.NewMessage("Allocation", []schema.Field{
		{Name: "allocation_id", Type: schema.Type{Kind: schema.KindString}},
		{Name: "sequence", Type: schema.Type{Kind: schema.KindUint64}},
		{Name: "priority", Type: schema.Type{Kind: schema.KindInt32}},
		{Name: "balance", Type: schema.Type{Kind: schema.KindInt64}},
		{Name: "active", Type: schema.Type{Kind: schema.KindBool}},
		{Name: "cpu_share", Type: schema.Type{Kind: schema.KindFloat}},
		{Name: "state", Type: schema.Type{Kind: schema.KindEnum, Enum: state}},
		{Name: "payload", Type: schema.Type{Kind: schema.KindBytes}},
		{Name: "pricing", Type: schema.Type{Kind: schema.KindMessage, Message: pricing}, Cardinality: schema.Optional},
		{Name: "tags", Type: schema.Type{Kind: schema.KindString}, Cardinality: schema.Repeated},
		{Name: "usage_rates", Type: schema.Type{Kind: schema.KindUint64}, Cardinality: schema.MapOf, Key: schema.KindString},
		{Name: "order_ref", Type: schema.Type{Kind: schema.KindString}, Oneof: "target"},
		{Name: "listing_ref", Type: schema.Type{Kind: schema.KindString}, Oneof: "target"},
	})
	if err != nil {
		t.Fatalf("NewMessage(Allocation): %v", err)
	}

	return &testSchema{state: state, pricing: pricing, allocation: allocation}
}

// mustSet populates a field or fails the test.
func mustSet(t *testing.T, message *Message, name string, value Value) {
	t.Helper()
	if err := message.Set(name, value); err != nil {
		t.Fatalf("Set(%s): %v", name, err)
	}
}

// mustMarshal encodes or fails the test.
func mustMarshal(t *testing.T, message *Message) []byte {
	t.Helper()
	data, err := Marshal(message)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

// mustUnmarshal decodes or fails the test.
func mustUnmarshal(t *testing.T, data []byte, descriptor *schema.Message) *Message {
	t.Helper()
	message, err := Unmarshal(data, descriptor)
	if err != nil {
		t.Fatalf("Unmarshal(%s): %v", data, err)
	}
	return message
}

// assertKind fails unless err is a *Error of the given kind.
func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !IsKind(err, kind) {
		t.Fatalf("expected %s error, got: %v", kind, err)
	}
}

// deepNodeDescriptor builds a self-recursive single-field descriptor
// for depth-limit tests.
func deepNodeDescriptor(t *testing.T) *schema.Message {
	t.Helper()
	node := schema.Declare("TreeNode")
	if err := node.Resolve([]schema.Field{
		{Name: "child", Type: schema.Type{Kind: schema.KindMessage, Message: node}, Cardinality: schema.Optional},
	}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return node
}
