package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/gin-gonic/gin"
)

func (s *Server) calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	raw, err := req.RawInputs()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	if c.Query("apply_defaults") == "true" {
		if raw, err = s.defaults.Apply(ctx, raw); err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
	}

	results, err := roast.Calculate(raw)
	if err != nil {
		c.IndentedJSON(http.StatusUnprocessableEntity, validationResponse(err))
		return
	}

	if c.Query("remember") == "true" {
		if err := s.defaults.RememberFrom(ctx, raw); err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		slog.Info("remembered default temperatures")
	}

	c.IndentedJSON(http.StatusOK, newCalculateResponse(results))
}

func newCalculateResponse(results model.PhaseResults) CalculateResponse {
	resp := CalculateResponse{Phases: make([]PhaseResponse, 0, len(results))}
	for _, p := range results {
		resp.Phases = append(resp.Phases, PhaseResponse{
			PhaseResult: p,
			From:        p.From.Key(),
			To:          p.To.Key(),
			Duration:    roast.FormatSecondsToTime(p.DurationSeconds),
		})
		resp.TotalSeconds += p.DurationSeconds
	}
	return resp
}

func validationResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var fieldErr *roast.FieldError
	var temporal *roast.TemporalOrderingError
	var thermal *roast.ThermalOrderingError
	switch {
	case errors.As(err, &fieldErr):
		resp.Kind = "field"
		resp.Stage = fieldErr.Stage.Key()
		resp.Field = fieldErr.Field
	case errors.As(err, &temporal):
		resp.Kind = "temporal_order"
		resp.Stage = temporal.Later.Key()
	case errors.As(err, &thermal):
		resp.Kind = "thermal_order"
		resp.Stage = thermal.Later.Key()
	}
	return resp
}

func (s *Server) listDefaults(c *gin.Context) {
	all, err := s.defaults.All(c.Request.Context())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	out := make(map[string]float64, len(all))
	for stage, v := range all {
		out[stage.Key()] = v
	}
	c.IndentedJSON(http.StatusOK, out)
}

func (s *Server) setDefault(c *gin.Context) {
	stage, ok := s.rememberableStage(c)
	if !ok {
		return
	}

	var req DefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Temperature == nil {
		c.IndentedJSON(http.StatusBadRequest, ErrorResponse{Error: "temperature is required"})
		return
	}

	if err := s.defaults.Remember(c.Request.Context(), stage, *req.Temperature); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	slog.Info("remembered default temperature", "stage", stage.Key(), "temperature", *req.Temperature)
	c.IndentedJSON(http.StatusOK, gin.H{stage.Key(): *req.Temperature})
}

func (s *Server) clearDefault(c *gin.Context) {
	stage, ok := s.rememberableStage(c)
	if !ok {
		return
	}

	if err := s.defaults.Forget(c.Request.Context(), stage); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) rememberableStage(c *gin.Context) (model.Stage, bool) {
	stage, err := model.ParseStage(c.Param("stage"))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return 0, false
	}
	if !preferences.Rememberable(stage) {
		c.IndentedJSON(http.StatusBadRequest, ErrorResponse{Error: preferences.ErrNotRememberable.Error(), Stage: stage.Key()})
		return 0, false
	}
	return stage, true
}

func (s *Server) getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"version": s.version})
}
