package api

import (
	"fmt"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
)

// CalculateRequest maps stage keys to raw input text.
type CalculateRequest map[string]model.RawCheckpointInput

// RawInputs converts the request into a snapshot keyed by Stage.
func (r CalculateRequest) RawInputs() (model.RawInputs, error) {
	raw := make(model.RawInputs, len(r))
	for k, v := range r {
		stage, err := model.ParseStage(k)
		if err != nil {
			return nil, err
		}
		if _, dup := raw[stage]; dup {
			return nil, fmt.Errorf("stage %s listed twice", stage)
		}
		raw[stage] = v
	}
	return raw, nil
}

// CalculateResponse is returned for a successful calculation.
type CalculateResponse struct {
	Phases       []PhaseResponse `json:"phases"`
	TotalSeconds float64         `json:"total_seconds"`
}

// PhaseResponse is one phase of a CalculateResponse.
type PhaseResponse struct {
	model.PhaseResult
	From     string `json:"from"`
	To       string `json:"to"`
	Duration string `json:"duration"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Stage string `json:"stage,omitempty"`
	Field string `json:"field,omitempty"`
}

// DefaultRequest is the body of PUT /defaults/:stage.
type DefaultRequest struct {
	Temperature *float64 `json:"temperature"`
}
