package model

// RawCheckpointInput is the unparsed text a user entered for one stage.
type RawCheckpointInput struct {
	Temperature string `json:"temperature" yaml:"temperature"`
	Time        string `json:"time" yaml:"time"`
}

// RawInputs is a snapshot of the raw text for every stage.
// A missing stage behaves like one with both fields left blank.
type RawInputs map[Stage]RawCheckpointInput

// Clone returns an independent copy of the snapshot.
func (r RawInputs) Clone() RawInputs {
	out := make(RawInputs, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Checkpoint is a parsed stage reading.
type Checkpoint struct {
	TemperatureCelsius float64 `json:"temperature_celsius"`
	ElapsedSeconds     float64 `json:"elapsed_seconds"`
}

// Checkpoints holds one parsed reading per stage, indexed by Stage.
type Checkpoints [StageCount]Checkpoint

// TotalSeconds is the elapsed time from turning point to drop.
func (c Checkpoints) TotalSeconds() float64 {
	return c[StageDrop].ElapsedSeconds - c[StageTurningPoint].ElapsedSeconds
}
