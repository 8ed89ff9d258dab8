// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"strings"
	"testing"
)

func TestUnmarshalDualAlias(t *testing.T) {
	descriptors := newTestSchema(t)

	camel := mustUnmarshal(t, []byte(`{"allocationId": "alloc-1"}`), descriptors.allocation)
	snake := mustUnmarshal(t, []byte(`{"allocation_id": "alloc-1"}`), descriptors.allocation)

	if !camel.Equal(snake) {
		t.Error("camelCase and snake_case spellings decoded to different messages")
	}
	if got := camel.Get("allocation_id"); !got.Equal(String("alloc-1")) {
		t.Errorf("allocation_id = %v, want alloc-1", got)
	}
}

func TestUnmarshalDuplicateAliasRejected(t *testing.T) {
	descriptors := newTestSchema(t)

	_, err := Unmarshal([]byte(`{"allocation_id": "a", "allocationId": "b"}`), descriptors.allocation)
	assertKind(t, err, DuplicateField)
}

func TestUnmarshalUnknownFieldRejected(t *testing.T) {
	descriptors := newTestSchema(t)

	_, err := Unmarshal([]byte(`{"bogusField": 1}`), descriptors.allocation)
	assertKind(t, err, UnknownField)
	if !strings.Contains(err.Error(), "bogusField") {
		t.Errorf("error does not name the unknown key: %v", err)
	}
}

func TestUnmarshalOmittedFieldsGetDefaults(t *testing.T) {
	descriptors := newTestSchema(t)
	message := mustUnmarshal(t, []byte(`{}`), descriptors.allocation)

	if got := message.Get("sequence"); !got.Equal(Uint64(0)) {
		t.Errorf("sequence = %v, want 0", got)
	}
	if got := message.Get("allocation_id"); !got.Equal(String("")) {
		t.Errorf("allocation_id = %v, want empty string", got)
	}
	if got := message.Get("state"); !got.Equal(Enum(0)) {
		t.Errorf("state = %v, want enum 0", got)
	}
	tags := message.Get("tags")
	if !tags.IsValid() || tags.Interface().(*List).Len() != 0 {
		t.Errorf("tags = %v, want empty list", tags)
	}

	// Presence-tracked fields stay absent: no field is ever required,
	// but an unset submessage is None, not an empty message.
	if message.Has("pricing") {
		t.Error("pricing materialized on decode, want absent")
	}
	if message.Has("order_ref") || message.Has("listing_ref") {
		t.Error("oneof members materialized on decode, want absent")
	}
}

func TestUnmarshalUint64String(t *testing.T) {
	descriptors := newTestSchema(t)

	message := mustUnmarshal(t, []byte(`{"sequence": "18446744073709551615"}`), descriptors.allocation)
	if got := message.Get("sequence"); !got.Equal(Uint64(18446744073709551615)) {
		t.Errorf("sequence = %v, want max uint64", got)
	}

	// The bare-number path also succeeds for in-range values.
	message = mustUnmarshal(t, []byte(`{"sequence": 123}`), descriptors.allocation)
	if got := message.Get("sequence"); !got.Equal(Uint64(123)) {
		t.Errorf("sequence = %v, want 123", got)
	}
}

func TestUnmarshalNumericRangeChecks(t *testing.T) {
	descriptors := newTestSchema(t)
	tests := []struct {
		name  string
		input string
	}{
		{"uint64 negative", `{"sequence": "-1"}`},
		{"uint64 fractional", `{"sequence": 1.5}`},
		{"uint64 garbage string", `{"sequence": "12x"}`},
		{"int32 overflow", `{"priority": 2147483648}`},
		{"int64 overflow string", `{"balance": "9223372036854775808"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(test.input), descriptors.allocation)
			assertKind(t, err, InvalidNumericString)
		})
	}
}

func TestUnmarshalEnumFallback(t *testing.T) {
	descriptors := newTestSchema(t)

	byName := mustUnmarshal(t, []byte(`{"state": "ALLOCATION_STATE_ACTIVE"}`), descriptors.allocation)
	byNumber := mustUnmarshal(t, []byte(`{"state": 4}`), descriptors.allocation)

	if !byName.Equal(byNumber) {
		t.Error("name and number spellings decoded to different messages")
	}
	if got := byName.Get("state"); !got.Equal(Enum(4)) {
		t.Errorf("state = %v, want 4", got)
	}

	// Unregistered numbers and names are hard errors.
	_, err := Unmarshal([]byte(`{"state": 999}`), descriptors.allocation)
	assertKind(t, err, InvalidEnumValue)

	_, err = Unmarshal([]byte(`{"state": "ALLOCATION_STATE_BOGUS"}`), descriptors.allocation)
	assertKind(t, err, InvalidEnumValue)

	// Name matching is exact and case-sensitive.
	_, err = Unmarshal([]byte(`{"state": "allocation_state_active"}`), descriptors.allocation)
	assertKind(t, err, InvalidEnumValue)
}

func TestUnmarshalInvalidBase64(t *testing.T) {
	descriptors := newTestSchema(t)

	tests := []string{
		`{"payload": "not!!base64"}`,
		`{"payload": "3q2+7w"}`, // missing padding
	}
	for _, input := range tests {
		_, err := Unmarshal([]byte(input), descriptors.allocation)
		assertKind(t, err, InvalidBase64)
	}
}

func TestUnmarshalOneofDuplicateMembers(t *testing.T) {
	descriptors := newTestSchema(t)

	_, err := Unmarshal([]byte(`{"orderRef": "a", "listingRef": "b"}`), descriptors.allocation)
	assertKind(t, err, DuplicateField)
}

func TestUnmarshalTypeMismatchShapes(t *testing.T) {
	descriptors := newTestSchema(t)
	tests := []struct {
		name  string
		input string
	}{
		{"object for repeated", `{"tags": {"a": 1}}`},
		{"array for map", `{"usageRates": [1, 2]}`},
		{"string for bool", `{"active": "yes"}`},
		{"number for string", `{"allocationId": 4}`},
		{"array for submessage", `{"pricing": []}`},
		{"string for float", `{"cpuShare": "fast"}`},
		{"null list element", `{"tags": ["a", null]}`},
		{"root not an object", `[]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(test.input), descriptors.allocation)
			assertKind(t, err, TypeMismatch)
		})
	}
}

func TestUnmarshalNullMeansAbsent(t *testing.T) {
	descriptors := newTestSchema(t)

	message := mustUnmarshal(t, []byte(`{"pricing": null, "sequence": null}`), descriptors.allocation)
	if message.Has("pricing") {
		t.Error("null submessage decoded as present")
	}
	if got := message.Get("sequence"); !got.Equal(Uint64(0)) {
		t.Errorf("sequence = %v, want default 0", got)
	}

	// Null consumes the key for duplicate detection.
	_, err := Unmarshal([]byte(`{"sequence": null, "sequence": 3}`), descriptors.allocation)
	assertKind(t, err, DuplicateField)
}

func TestUnmarshalDuplicateMapKey(t *testing.T) {
	descriptors := newTestSchema(t)

	_, err := Unmarshal([]byte(`{"usageRates": {"gpu": "1", "gpu": "2"}}`), descriptors.allocation)
	assertKind(t, err, DuplicateField)
}

func TestUnmarshalNestingTooDeep(t *testing.T) {
	input := strings.Repeat(`{"child":`, 150) + "{}" + strings.Repeat("}", 150)
	node := deepNodeDescriptor(t)
	_, err := Unmarshal([]byte(input), node)
	assertKind(t, err, NestingTooDeep)

	if _, err := (UnmarshalOptions{MaxDepth: 200}).Unmarshal([]byte(input), node); err != nil {
		t.Errorf("Unmarshal with raised MaxDepth: %v", err)
	}
}

func TestUnmarshalTrailingData(t *testing.T) {
	descriptors := newTestSchema(t)

	if _, err := Unmarshal([]byte(`{} {"again": true}`), descriptors.allocation); err == nil {
		t.Error("trailing data accepted")
	}
}

func TestUnmarshalMalformedJSON(t *testing.T) {
	descriptors := newTestSchema(t)

	inputs := []string{``, `{`, `{"allocationId": }`, `{"allocationId" "x"}`}
	for _, input := range inputs {
		if _, err := Unmarshal([]byte(input), descriptors.allocation); err == nil {
			t.Errorf("malformed input %q accepted", input)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	descriptors := newTestSchema(t)
	message := NewMessage(descriptors.allocation)

	mustSet(t, message, "allocation_id", String("alloc-42"))
	mustSet(t, message, "sequence", Uint64(18446744073709551615))
	mustSet(t, message, "priority", Int32(-3))
	mustSet(t, message, "balance", Int64(-1234567890123))
	mustSet(t, message, "active", Bool(true))
	mustSet(t, message, "cpu_share", Float(0.25))
	mustSet(t, message, "state", Enum(5))
	mustSet(t, message, "payload", Bytes([]byte("hello")))

	pricing := NewMessage(descriptors.pricing)
	mustSet(t, pricing, "rate_per_hour", Uint64(95))
	mustSet(t, pricing, "currency", String("USD"))
	mustSet(t, message, "pricing", MessageValue(pricing))

	mustSet(t, message, "tags", ListValue(NewList(String("spot"), String("gpu"))))

	rates := NewMap()
	if err := rates.Set(String("gpu"), Uint64(12)); err != nil {
		t.Fatalf("Map.Set: %v", err)
	}
	mustSet(t, message, "usage_rates", MapValue(rates))
	mustSet(t, message, "listing_ref", String("lst-7"))

	encoded := mustMarshal(t, message)
	decoded := mustUnmarshal(t, encoded, descriptors.allocation)
	if !decoded.Equal(message) {
		t.Errorf("round-trip mismatch:\n encoded: %s", encoded)
	}

	// Re-encoding the decoded message is byte-identical (map
	// insertion order survives the trip).
	if reEncoded := mustMarshal(t, decoded); string(reEncoded) != string(encoded) {
		t.Errorf("re-encode mismatch:\n first:  %s\n second: %s", encoded, reEncoded)
	}
}

func TestRoundTripAllDefaults(t *testing.T) {
	descriptors := newTestSchema(t)
	message := NewMessage(descriptors.allocation)
	mustSet(t, message, "sequence", Uint64(0))
	mustSet(t, message, "allocation_id", String(""))

	encoded := mustMarshal(t, message)
	if string(encoded) != "{}" {
		t.Fatalf("Marshal = %s, want {}", encoded)
	}
	decoded := mustUnmarshal(t, encoded, descriptors.allocation)
	if !decoded.Equal(message) {
		t.Error("all-default round trip lost equality")
	}
}
