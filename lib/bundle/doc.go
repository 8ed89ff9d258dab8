// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle reads and writes compiled schema bundles.
//
// A bundle is a single self-verifying file carrying one schema
// document: a fixed header (magic, compression tag, payload size,
// registry fingerprint) followed by the document encoded as
// deterministic CBOR and compressed. Reading a bundle rebuilds the
// registry and recomputes its fingerprint; any drift between the
// stored and recomputed fingerprints is an error.
package bundle
