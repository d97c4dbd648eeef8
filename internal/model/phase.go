package model

// PhaseResult holds the derived statistics for the span between two stages.
type PhaseResult struct {
	Label             string  `json:"label" yaml:"label"`
	From              Stage   `json:"-" yaml:"-"`
	To                Stage   `json:"-" yaml:"-"`
	DurationSeconds   float64 `json:"duration_seconds" yaml:"duration_seconds"`
	RatePerMinute     float64 `json:"rate_per_minute" yaml:"rate_per_minute"`
	PercentageOfTotal float64 `json:"percentage_of_total" yaml:"percentage_of_total"`
}

// PhaseResults is the fixed, ordered output of a calculation:
// TP→Yellow, Yellow→FC, FC→Drop.
type PhaseResults [PhaseCount]PhaseResult

// PhaseLabel builds the label for the phase between from and to.
func PhaseLabel(from, to Stage) string {
	return from.Short() + " → " + to.Short()
}
