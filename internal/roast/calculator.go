package roast

import "github.com/Veraticus/the-roast-must-rise/internal/model"

// ComputePhases derives the three phase results from validated checkpoints.
// No validation happens here. Non-positive durations yield a zero rate and a
// non-positive total yields zero percentages instead of dividing by zero.
func ComputePhases(cps model.Checkpoints) model.PhaseResults {
	var results model.PhaseResults
	total := cps.TotalSeconds()

	for i := 0; i < model.PhaseCount; i++ {
		from, to := model.Stages[i], model.Stages[i+1]
		prev, next := cps[from], cps[to]

		duration := next.ElapsedSeconds - prev.ElapsedSeconds

		var rate float64
		if duration > 0 {
			rate = (next.TemperatureCelsius - prev.TemperatureCelsius) / (duration / 60)
		}

		var pct float64
		if total > 0 {
			pct = duration / total * 100
		}

		results[i] = model.PhaseResult{
			Label:             model.PhaseLabel(from, to),
			From:              from,
			To:                to,
			DurationSeconds:   duration,
			RatePerMinute:     rate,
			PercentageOfTotal: pct,
		}
	}

	return results
}
