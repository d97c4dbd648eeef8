package roast

import "github.com/Veraticus/the-roast-must-rise/internal/model"

// Calculate runs the full pipeline over a snapshot of raw inputs.
// Errors are *FieldError, *TemporalOrderingError or *ThermalOrderingError,
// all of which match ErrValidation.
func Calculate(raw model.RawInputs) (model.PhaseResults, error) {
	cps, err := ParseCheckpoints(raw)
	if err != nil {
		return model.PhaseResults{}, err
	}

	if err := ValidateSequence(cps); err != nil {
		return model.PhaseResults{}, err
	}

	return ComputePhases(cps), nil
}
