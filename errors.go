package isotope

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidNuclide indicates malformed or out-of-range nuclide identity input.
	ErrInvalidNuclide = errors.New("invalid nuclide")

	// ErrEmptyComposition indicates normalization of a zero-sum or empty composition.
	ErrEmptyComposition = errors.New("empty composition")

	// ErrValidation indicates a negative, NaN, or infinite quantity.
	ErrValidation = errors.New("validation failed")

	// ErrDataUnavailable indicates a conversion needs nuclear data the provider cannot supply.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInvalidArgument indicates an out-of-range weight or bad serializer configuration.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnknownFormat indicates no Format is registered under a name.
	ErrUnknownFormat = errors.New("unknown format")
)

// NuclideError reports input that could not be canonicalized.
type NuclideError struct {
	Input  string // Input as the caller supplied it
	Reason string // Why it was rejected
}

func (e *NuclideError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", ErrInvalidNuclide.Error(), e.Input, e.Reason)
	}
	return fmt.Sprintf("%s %q", ErrInvalidNuclide.Error(), e.Input)
}

func (e *NuclideError) Unwrap() error {
	return ErrInvalidNuclide
}

// ValidationError reports a rejected quantity.
type ValidationError struct {
	Field string  // Quantity being set (fraction, mass, density, ...)
	Nuc   Nuc     // Nuclide the quantity belongs to, zero for bulk fields
	Value float64 // Offending value
}

func (e *ValidationError) Error() string {
	if e.Nuc != 0 {
		return fmt.Sprintf("%s: %s of %s is %v", ErrValidation.Error(), e.Field, e.Nuc, e.Value)
	}
	return fmt.Sprintf("%s: %s is %v", ErrValidation.Error(), e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DataError reports a nuclide the DataProvider has no data for.
type DataError struct {
	Nuc      Nuc    // Nuclide that was queried
	Quantity string // Requested quantity (atomic mass, abundance)
}

func (e *DataError) Error() string {
	if e.Nuc == 0 {
		return fmt.Sprintf("%s: no %s provider", ErrDataUnavailable.Error(), e.Quantity)
	}
	return fmt.Sprintf("%s: %s of %s", ErrDataUnavailable.Error(), e.Quantity, e.Nuc)
}

func (e *DataError) Unwrap() error {
	return ErrDataUnavailable
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newNuclideError creates a NuclideError for rejected identity input.
func newNuclideError(input any, reason string) error {
	return &NuclideError{
		Input:  fmt.Sprint(input),
		Reason: reason,
	}
}

// newValidationError creates a ValidationError for a rejected quantity.
func newValidationError(field string, nuc Nuc, value float64) error {
	return &ValidationError{
		Field: field,
		Nuc:   nuc,
		Value: value,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
// Format sub-packages use it to report bad configuration.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
