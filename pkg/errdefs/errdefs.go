package errdefs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the spec layer. Callers match with errors.Is or the
// predicate helpers below.
var (
	// ErrInvalidSpec indicates a structural or semantic validation failure.
	// Never retried automatically; the caller must fix the spec.
	ErrInvalidSpec = errors.New("invalid spec")

	// ErrConflict indicates an optimistic-concurrency version mismatch at
	// the store boundary. The caller must re-read and retry.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a referenced object does not exist.
	ErrNotFound = errors.New("not found")
)

// IsInvalidSpec reports whether err is or wraps ErrInvalidSpec.
func IsInvalidSpec(err error) bool { return errors.Is(err, ErrInvalidSpec) }

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Conflict returns an ErrConflict describing a version mismatch.
func Conflict(kind, id string, expected, actual uint64) error {
	return fmt.Errorf("%w: %s %s: version %d does not match stored version %d",
		ErrConflict, kind, id, expected, actual)
}

// NotFound returns an ErrNotFound for the given object.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// FieldViolation is a single validation failure, addressed by field path
// (e.g. "task.container.env[2]").
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Reason
}

// ValidationError aggregates every violation found in one validation pass so
// a client can fix all of them in a single round trip.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("invalid spec: %s", strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrInvalidSpec) hold for validation errors.
func (e *ValidationError) Unwrap() error { return ErrInvalidSpec }

// Violations collects field violations during a validation pass.
// The zero value is ready to use.
type Violations struct {
	list []FieldViolation
}

// Add records a violation against the given field path.
func (vs *Violations) Add(field, reason string) {
	vs.list = append(vs.list, FieldViolation{Field: field, Reason: reason})
}

// Addf records a violation with a formatted reason.
func (vs *Violations) Addf(field, format string, args ...any) {
	vs.Add(field, fmt.Sprintf(format, args...))
}

// Merge appends violations from a nested validation pass, prefixing each
// field path with the parent field.
func (vs *Violations) Merge(prefix string, err error) {
	if err == nil {
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		for _, v := range ve.Violations {
			field := v.Field
			if prefix != "" {
				if field == "" {
					field = prefix
				} else {
					field = prefix + "." + field
				}
			}
			vs.list = append(vs.list, FieldViolation{Field: field, Reason: v.Reason})
		}
		return
	}
	vs.Add(prefix, err.Error())
}

// Err returns the aggregated ValidationError, or nil if nothing was recorded.
func (vs *Violations) Err() error {
	if len(vs.list) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs.list}
}
