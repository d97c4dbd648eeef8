package roast

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
)

// Field names reported in FieldError.
const (
	FieldTemperature = "temperature"
	FieldTime        = "time"
)

// ParseCheckpoints parses the raw text of every stage in roast order.
// It stops at the first stage that fails and returns a *FieldError for it.
func ParseCheckpoints(raw model.RawInputs) (model.Checkpoints, error) {
	var checkpoints model.Checkpoints

	for _, stage := range model.Stages {
		cp, err := parseCheckpoint(stage, raw[stage])
		if err != nil {
			return model.Checkpoints{}, err
		}
		checkpoints[stage] = cp
	}

	return checkpoints, nil
}

func parseCheckpoint(stage model.Stage, in model.RawCheckpointInput) (model.Checkpoint, error) {
	temp, err := parseTemperature(in.Temperature)
	if err != nil {
		return model.Checkpoint{}, &FieldError{
			Stage: stage,
			Field: FieldTemperature,
			Value: in.Temperature,
			Err:   err,
		}
	}

	seconds, err := ParseTimeToSeconds(strings.TrimSpace(in.Time))
	if err == nil && seconds < 0 {
		err = ErrInvalidTime
	}
	if err != nil {
		return model.Checkpoint{}, &FieldError{
			Stage: stage,
			Field: FieldTime,
			Value: in.Time,
			Err:   err,
		}
	}

	return model.Checkpoint{
		TemperatureCelsius: temp,
		ElapsedSeconds:     float64(seconds),
	}, nil
}

// parseTemperature accepts plain decimal notation only; hex floats and
// underscore digit separators are rejected.
func parseTemperature(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "xX_") {
		return 0, ErrInvalidTemperature
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidTemperature
	}
	return v, nil
}
