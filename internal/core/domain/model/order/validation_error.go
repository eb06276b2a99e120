package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// ValidationError reports a raw order payload that cannot become an Order.
// Missing holds absent required fields, Invalid holds required fields whose
// value is not a string. Both keep the order of RequiredFields.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: [%s]", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: [%s]", strings.Join(e.Invalid, ", ")))
	}
	return "order validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match the failure with errs.ErrValueIsRequired or
// errs.ErrValueIsInvalid.
func (e *ValidationError) Unwrap() error {
	if len(e.Missing) > 0 {
		return errs.ErrValueIsRequired
	}
	return errs.ErrValueIsInvalid
}
