package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// FieldErrors maps field name to a human-readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = msg
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "no field errors"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, fe[f])
	}
	return strings.Join(parts, "; ")
}

// ValidationError aborts an entire write. Per-item failures inside nested
// collections do not use this; they become ItemFailure entries instead.
type ValidationError struct {
	Fields FieldErrors `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ItemFailure records one nested child that could not be applied. Failing
// items never abort the batch: a known identity keeps its persisted value, an
// unknown one is omitted from the result.
type ItemFailure struct {
	Collection string      `json:"collection"`
	Index      int         `json:"index"`
	ItemID     *uuid.UUID  `json:"item_id,omitempty"`
	Fields     FieldErrors `json:"fields"`
}
