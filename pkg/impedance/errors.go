package impedance

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateInput  = errors.New("degenerate input")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrSingularResponse = errors.New("singular response")
	ErrMalformedInput   = errors.New("malformed input")
)

// DegenerateInputError is returned when two time samples of a segment
// coincide (or are out of order), so the interpolating quadratic is undefined.
type DegenerateInputError struct {
	Stage string
	Index int
	T0    float64
	T1    float64
}

func (e DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: %v at segment %d: time samples %v and %v are not strictly increasing", e.Stage, ErrDegenerateInput, e.Index, e.T0, e.T1)
}

func (e DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}

// InvalidFrequencyError is returned when a zero, negative or non-finite
// angular frequency reaches a stage that divides by it.
type InvalidFrequencyError struct {
	Stage string
	Index int
	Value float64
}

func (e InvalidFrequencyError) Error() string {
	return fmt.Sprintf("%s: %v at index %d: %v", e.Stage, ErrInvalidFrequency, e.Index, e.Value)
}

func (e InvalidFrequencyError) Is(target error) bool {
	return target == ErrInvalidFrequency
}

// SingularResponseError is returned when the admittance is exactly zero,
// so the impedance cannot be computed.
type SingularResponseError struct {
	Stage     string
	Index     int
	Frequency float64
}

func (e SingularResponseError) Error() string {
	return fmt.Sprintf("%s: %v at index %d (frequency %v rad/s): admittance is zero", e.Stage, ErrSingularResponse, e.Index, e.Frequency)
}

func (e SingularResponseError) Is(target error) bool {
	return target == ErrSingularResponse
}

// MalformedInputError is returned for inputs of the wrong shape:
// too short, empty, or with mismatched lengths.
type MalformedInputError struct {
	Stage  string
	Index  int
	Reason string
}

func (e MalformedInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v: %s", e.Stage, ErrMalformedInput, e.Reason)
	}
	return fmt.Sprintf("%s: %v at index %d: %s", e.Stage, ErrMalformedInput, e.Index, e.Reason)
}

func (e MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Malformed is a shorthand for a MalformedInputError not bound to an index.
func Malformed(stage string, format string, args ...any) error {
	return MalformedInputError{
		Stage:  stage,
		Index:  -1,
		Reason: fmt.Sprintf(format, args...),
	}
}
