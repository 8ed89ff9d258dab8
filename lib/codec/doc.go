// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec implements the proto3 JSON mapping for dynamic
// messages described by lib/schema descriptors: one reflective engine
// instead of per-message hand-expanded marshal code.
//
// [Marshal] walks a [Message] against its descriptor and emits a JSON
// object in descriptor field order, omitting fields at their type
// default; presence-tracked fields (optional fields, message fields,
// oneof members) are emitted whenever populated, even when the value
// is itself all-default. 64-bit integers are emitted as decimal
// strings, bytes as padded standard base64, enums by registered name.
//
// [Unmarshal] is strict: it accepts exactly the canonical snake_case
// or the lowerCamelCase spelling of each field, rejects unknown keys,
// rejects the same field populated twice (including once under each
// alias, and two members of one oneof group), and fills omitted
// fields with their type defaults. Decoding is all-or-nothing — on
// the first malformed token a [*Error] is returned and no partial
// message escapes.
//
// Encode and decode are pure synchronous computations over immutable
// descriptors; any number of goroutines may share one descriptor. The
// only enforced resource bound is message nesting depth
// ([DefaultMaxDepth], configurable via [MarshalOptions] and
// [UnmarshalOptions]).
package codec
