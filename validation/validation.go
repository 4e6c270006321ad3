package validation

import (
	"slices"
	"strings"

	"github.com/diewo77/agence-immo/internal/apperr"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns nil when there is no violation, otherwise a validation error
// carrying the violations as details.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return apperr.Validation("validation failed", map[string]string(v))
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	if !slices.Contains(allowed, value) {
		v[field] = "invalid"
	}
}
