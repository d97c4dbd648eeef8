package roast

import "github.com/Veraticus/the-roast-must-rise/internal/model"

// ValidateSequence checks that times strictly increase across all stages and
// that temperatures strictly increase up to first crack. Drop may equal first
// crack. The thermal check only runs once the temporal check has passed.
func ValidateSequence(cps model.Checkpoints) error {
	for i := 1; i < model.StageCount; i++ {
		prev, next := model.Stages[i-1], model.Stages[i]
		if cps[prev].ElapsedSeconds >= cps[next].ElapsedSeconds {
			return &TemporalOrderingError{Earlier: prev, Later: next}
		}
	}

	for i := 1; i < model.StageCount; i++ {
		prev, next := model.Stages[i-1], model.Stages[i]
		allowEqual := next == model.StageDrop

		a, b := cps[prev].TemperatureCelsius, cps[next].TemperatureCelsius
		if a > b || (a == b && !allowEqual) {
			return &ThermalOrderingError{Earlier: prev, Later: next, AllowEqual: allowEqual}
		}
	}

	return nil
}
