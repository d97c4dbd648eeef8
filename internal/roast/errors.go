package roast

import (
	"errors"
	"fmt"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
)

var (
	// ErrValidation matches every error returned by Calculate.
	ErrValidation = errors.New("invalid roast checkpoints")

	// ErrInvalidTime is returned by ParseTimeToSeconds for text that is not MM:SS.
	ErrInvalidTime = errors.New("invalid time, expected MM:SS")

	// ErrInvalidTemperature is returned when a temperature is not a finite number.
	ErrInvalidTemperature = errors.New("invalid temperature")
)

// FieldError reports a stage whose temperature or time text could not be parsed.
type FieldError struct {
	Err   error
	Field string
	Value string
	Stage model.Stage
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q", e.Stage, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// TemporalOrderingError reports two consecutive stages whose times are not
// strictly increasing.
type TemporalOrderingError struct {
	Earlier model.Stage
	Later   model.Stage
}

func (e *TemporalOrderingError) Error() string {
	return fmt.Sprintf("%s time must be before %s time", e.Earlier, e.Later)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *TemporalOrderingError) Is(target error) bool {
	return target == ErrValidation
}

// ThermalOrderingError reports two consecutive stages whose temperatures
// break the required ordering.
type ThermalOrderingError struct {
	Earlier    model.Stage
	Later      model.Stage
	AllowEqual bool
}

func (e *ThermalOrderingError) Error() string {
	if e.AllowEqual {
		return fmt.Sprintf("%s temperature must not exceed %s temperature", e.Earlier, e.Later)
	}
	return fmt.Sprintf("%s temperature must be lower than %s temperature", e.Earlier, e.Later)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ThermalOrderingError) Is(target error) bool {
	return target == ErrValidation
}
