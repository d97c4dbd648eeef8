// Package model defines the roast data types shared across the application.
package model

import "fmt"

// Stage identifies one of the four roast checkpoints.
type Stage int

const (
	// StageTurningPoint is the bean temperature minimum after charging.
	StageTurningPoint Stage = iota
	// StageYellowing marks the end of the drying phase.
	StageYellowing
	// StageFirstCrack marks the start of development.
	StageFirstCrack
	// StageDrop is the moment the beans leave the drum.
	StageDrop
)

// StageCount is the number of checkpoints in a roast.
const StageCount = 4

// PhaseCount is the number of phases between consecutive checkpoints.
const PhaseCount = StageCount - 1

// Stages lists every stage in roast order.
var Stages = [StageCount]Stage{
	StageTurningPoint,
	StageYellowing,
	StageFirstCrack,
	StageDrop,
}

// String returns the display name of the stage.
func (s Stage) String() string {
	switch s {
	case StageTurningPoint:
		return "Turning Point"
	case StageYellowing:
		return "Yellowing"
	case StageFirstCrack:
		return "First Crack"
	case StageDrop:
		return "Drop"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Key returns the machine-readable identifier used in files, flags and URLs.
func (s Stage) Key() string {
	switch s {
	case StageTurningPoint:
		return "turning_point"
	case StageYellowing:
		return "yellowing"
	case StageFirstCrack:
		return "first_crack"
	case StageDrop:
		return "drop"
	default:
		return ""
	}
}

// Short returns the abbreviation used in phase labels.
func (s Stage) Short() string {
	switch s {
	case StageTurningPoint:
		return "TP"
	case StageYellowing:
		return "Yellow"
	case StageFirstCrack:
		return "FC"
	case StageDrop:
		return "Drop"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool {
	return s >= StageTurningPoint && s <= StageDrop
}

// ParseStage resolves a stage from its key. Short names are accepted too.
func ParseStage(key string) (Stage, error) {
	for _, s := range Stages {
		if key == s.Key() || key == s.Short() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stage: %q", key)
}
