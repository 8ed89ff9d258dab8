// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the immutable type model that drives the
// wirejson codec: message, field, and enum descriptors plus the
// canonical/JSON field-name mapping.
//
// Descriptors are built once at schema-load time — either directly via
// [NewMessage] and [NewEnum], or from a declarative schema document
// (see lib/schemafile) — and are read-only afterwards. A [Registry]
// holds the descriptors for one schema family and is safe for
// unlimited concurrent use by encoders and decoders; nothing in this
// package mutates after construction.
//
// Field names exist in two spellings: the canonical snake_case name
// ("allocation_id") and its derived lowerCamelCase JSON name
// ("allocationId"), computed by [JSONName]. [Message.ResolveField]
// accepts exactly these two spellings and nothing else — near-miss or
// case-folded spellings do not resolve. Encoders always emit the JSON
// name.
//
// [MessageFingerprint] and [RegistryFingerprint] produce BLAKE3
// digests over the deterministic CBOR encoding of descriptor
// structure, used by lib/bundle and the wirejson CLI to detect schema
// drift between producers and consumers.
//
// This package depends on no other wirejson packages.
package schema
