// Package transform builds what-if variants of a user profile. Transforms
// are small composable edits (drive more, lose the wallbox) that are
// applied to a copy of the base profile so the comparison can be rerun
// side by side.
package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/domain"
)

// ProfileTransform is one what-if edit of a profile
type ProfileTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.UserProfile) (domain.UserProfile, error)

	// Name returns the registry identifier, e.g. "set_mileage"
	Name() string

	// Description returns a human-readable summary of the edit
	Description() string

	// Validate checks the transform parameters against base without applying it
	Validate(base domain.UserProfile) error
}

// ApplyTransforms applies transforms in order, each one receiving the
// output of the previous one.
func ApplyTransforms(base domain.UserProfile, transforms []ProfileTransform) (domain.UserProfile, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// Describe joins the descriptions of transforms for report headers
func Describe(transforms []ProfileTransform) string {
	if len(transforms) == 0 {
		return "unchanged"
	}
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, ", ")
}

// TransformError represents an error that occurred during transformation
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
