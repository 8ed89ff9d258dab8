// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemafile loads declarative schema documents and compiles
// them into schema registries.
//
// Schema documents declare enums and messages by name. On disk they
// are authored as JSONC (JSON extended with // line comments, /* block
// comments */, and trailing commas) or as YAML; both map onto the same
// Document structure.
//
// The typical flow:
//
//  1. ReadFile or Parse: document bytes → Document
//  2. Build: Document → *schema.Registry, with forward references and
//     message cycles resolved in a second pass
package schemafile
