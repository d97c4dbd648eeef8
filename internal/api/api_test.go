package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioA = `{
	"turning_point": {"temperature": "160", "time": "00:00"},
	"yellowing":     {"temperature": "170", "time": "02:00"},
	"first_crack":   {"temperature": "196", "time": "08:00"},
	"drop":          {"temperature": "205", "time": "10:00"}
}`

func newTestServer(t *testing.T) (*Server, *preferences.Defaults) {
	t.Helper()
	db := testutil.SetupTestDB(t, nil)
	return NewServer(db.Defaults, "test"), db.Defaults
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestCalculate_OK(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/calculate", scenarioA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Phases, 3)

	assert.Equal(t, "TP → Yellow", resp.Phases[0].Label)
	assert.Equal(t, "turning_point", resp.Phases[0].From)
	assert.Equal(t, "yellowing", resp.Phases[0].To)
	assert.Equal(t, "02:00", resp.Phases[0].Duration)
	assert.InDelta(t, 5.0, resp.Phases[0].RatePerMinute, 1e-9)
	assert.InDelta(t, 60.0, resp.Phases[1].PercentageOfTotal, 1e-9)
	assert.Equal(t, 600.0, resp.TotalSeconds)
}

func TestCalculate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  string
		wantStage string
	}{
		{
			name: "bad time",
			body: `{
				"turning_point": {"temperature": "160", "time": "00:00"},
				"yellowing":     {"temperature": "170", "time": "5:70"},
				"first_crack":   {"temperature": "196", "time": "08:00"},
				"drop":          {"temperature": "205", "time": "10:00"}
			}`,
			wantKind:  "field",
			wantStage: "yellowing",
		},
		{
			name: "missing stage",
			body: `{
				"turning_point": {"temperature": "160", "time": "00:00"},
				"yellowing":     {"temperature": "170", "time": "02:00"},
				"first_crack":   {"temperature": "196", "time": "08:00"}
			}`,
			wantKind:  "field",
			wantStage: "drop",
		},
		{
			name: "times out of order",
			body: `{
				"turning_point": {"temperature": "160", "time": "00:00"},
				"yellowing":     {"temperature": "170", "time": "08:00"},
				"first_crack":   {"temperature": "196", "time": "05:00"},
				"drop":          {"temperature": "205", "time": "10:00"}
			}`,
			wantKind:  "temporal_order",
			wantStage: "first_crack",
		},
		{
			name: "drop cooler than first crack",
			body: `{
				"turning_point": {"temperature": "160", "time": "00:00"},
				"yellowing":     {"temperature": "170", "time": "02:00"},
				"first_crack":   {"temperature": "196", "time": "08:00"},
				"drop":          {"temperature": "190", "time": "10:00"}
			}`,
			wantKind:  "thermal_order",
			wantStage: "drop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)

			rec := do(t, s, http.MethodPost, "/calculate", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.Equal(t, tt.wantStage, resp.Stage)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCalculate_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{"", "not json", `{"second_crack": {"temperature": "1", "time": "1:00"}}`} {
		rec := do(t, s, http.MethodPost, "/calculate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCalculate_ApplyDefaultsAndRemember(t *testing.T) {
	s, defaults := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, defaults.Remember(ctx, model.StageYellowing, 170))

	body := `{
		"turning_point": {"temperature": "160", "time": "00:00"},
		"yellowing":     {"temperature": "", "time": "02:00"},
		"first_crack":   {"temperature": "197", "time": "08:00"},
		"drop":          {"temperature": "205", "time": "10:00"}
	}`

	rec := do(t, s, http.MethodPost, "/calculate", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "defaults are not applied unless asked")

	rec = do(t, s, http.MethodPost, "/calculate?apply_defaults=true&remember=true", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	fc, ok, err := defaults.Temperature(ctx, model.StageFirstCrack)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 197.0, fc)
}

func TestDefaultsRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/defaults/yellowing", `{"temperature": 171.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]float64{"yellowing": 171.5}, got)

	rec = do(t, s, http.MethodDelete, "/defaults/yellowing", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/defaults", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got)
}

func TestDefaultsRoutes_Rejections(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "unknown stage", method: http.MethodPut, path: "/defaults/roast", body: `{"temperature": 1}`, want: http.StatusNotFound},
		{name: "not rememberable", method: http.MethodPut, path: "/defaults/drop", body: `{"temperature": 1}`, want: http.StatusBadRequest},
		{name: "missing temperature", method: http.MethodPut, path: "/defaults/first_crack", body: `{}`, want: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPut, path: "/defaults/FC", body: `{`, want: http.StatusBadRequest},
		{name: "delete turning point", method: http.MethodDelete, path: "/defaults/turning_point", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestVersion(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version": "test"}`, rec.Body.String())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/version")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
