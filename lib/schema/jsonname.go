// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// JSONName returns the lowerCamelCase JSON spelling of a canonical
// snake_case field name: underscores are removed and the character
// following each underscore is upper-cased. "allocation_id" becomes
// "allocationId", "rate_per_hour_v2" becomes "ratePerHourV2". The
// transform is deterministic and total; it does not validate the
// input (see validateFieldName for that).
func JSONName(canonical string) string {
	if !strings.ContainsRune(canonical, '_') {
		return canonical
	}
	var builder strings.Builder
	builder.Grow(len(canonical))
	upperNext := false
	for _, r := range canonical {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			upperNext = false
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// validateFieldName checks that a canonical field name is well formed:
// a lowercase letter followed by lowercase letters, digits, and
// non-adjacent, non-trailing underscores. This keeps the snake_case to
// lowerCamelCase transform unambiguous and reversible.
func validateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("field name is empty")
	}
	if name[0] < 'a' || name[0] > 'z' {
		return fmt.Errorf("field name %q must start with a lowercase letter", name)
	}
	previousUnderscore := false
	for i := 1; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			previousUnderscore = false
		case c == '_':
			if previousUnderscore {
				return fmt.Errorf("field name %q has adjacent underscores", name)
			}
			previousUnderscore = true
		default:
			return fmt.Errorf("field name %q has invalid character %q", name, c)
		}
	}
	if previousUnderscore {
		return fmt.Errorf("field name %q ends with an underscore", name)
	}
	return nil
}
