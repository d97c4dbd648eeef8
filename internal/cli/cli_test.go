package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func scenarioResults(t *testing.T) model.PhaseResults {
	t.Helper()
	results, err := roast.Calculate(model.RawInputs{
		model.StageTurningPoint: {Temperature: "160", Time: "00:00"},
		model.StageYellowing:    {Temperature: "170", Time: "02:00"},
		model.StageFirstCrack:   {Temperature: "196", Time: "08:00"},
		model.StageDrop:         {Temperature: "205", Time: "10:00"},
	})
	require.NoError(t, err)
	return results
}

func TestNewReport(t *testing.T) {
	report := NewReport(scenarioResults(t))

	require.Len(t, report.Phases, 3)
	assert.Equal(t, PhaseRow{
		Phase:           "Yellow → FC",
		Duration:        "06:00",
		DurationSeconds: 360,
		RatePerMinute:   4.33,
		Percentage:      60,
	}, report.Phases[1])
	assert.Equal(t, "10:00", report.TotalTime)
	assert.Equal(t, 600.0, report.TotalSeconds)
}

func TestRenderResults_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderResults(&buf, scenarioResults(t), "table"))

	out := buf.String()
	for _, want := range []string{"TP → Yellow", "FC → Drop", "02:00", "06:00", "5.00", "4.33", "4.50", "20.0%", "60.0%", "10:00"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderResults(&buf, scenarioResults(t), "json"))

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "TP → Yellow", report.Phases[0].Phase)
	assert.Equal(t, 5.0, report.Phases[0].RatePerMinute)
	assert.Equal(t, 4.5, report.Phases[2].RatePerMinute)
}

func TestRenderResults_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderResults(&buf, scenarioResults(t), "yaml"))

	var report Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "02:00", report.Phases[2].Duration)
	assert.Equal(t, 20.0, report.Phases[2].Percentage)
}

func TestRenderResults_UnknownFormat(t *testing.T) {
	err := RenderResults(io.Discard, scenarioResults(t), "csv")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestPrompter_PromptInputs(t *testing.T) {
	input := strings.Join([]string{
		"160", "00:00",
		"", "02:00", // blank takes the remembered default
		"197", "08:00",
		"205", "10:00",
	}, "\n") + "\n"

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(input), &out)

	raw, err := p.PromptInputs(context.Background(), map[model.Stage]float64{
		model.StageYellowing:  170,
		model.StageFirstCrack: 196,
	})
	require.NoError(t, err)

	assert.Equal(t, model.RawInputs{
		model.StageTurningPoint: {Temperature: "160", Time: "00:00"},
		model.StageYellowing:    {Temperature: "170", Time: "02:00"},
		model.StageFirstCrack:   {Temperature: "197", Time: "08:00"},
		model.StageDrop:         {Temperature: "205", Time: "10:00"},
	}, raw)
	assert.Contains(t, out.String(), "Yellowing temperature (°C) [170]")
	assert.Contains(t, out.String(), "Drop time (MM:SS)")
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	input := "160\n00:00\n170\n02:00\n196\n08:00\n205\n10:00"
	p := NewPrompter(strings.NewReader(input), io.Discard)

	raw, err := p.PromptInputs(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "10:00", raw[model.StageDrop].Time)
}

func TestPrompter_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("160\n"), io.Discard)

	_, err := p.PromptInputs(context.Background(), nil)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	p := NewPrompter(pr, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := p.PromptInputs(ctx, nil)
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrInputCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("prompter did not return after cancel")
	}
}

func TestInterruptHandler_Trigger(t *testing.T) {
	buf := &syncBuffer{}
	h := NewInterruptHandler(buf, "Stopped watching")

	assert.False(t, h.WasInterrupted())
	h.trigger()
	h.trigger()

	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(buf.String(), "Stopped watching"))
}

func TestInterruptHandler_ContextCancel(t *testing.T) {
	h := NewInterruptHandler(io.Discard, "bye")
	parent, cancel := context.WithCancel(context.Background())

	ctx := h.HandleInterrupts(parent)
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context not cancelled with parent")
	}
	assert.False(t, h.WasInterrupted())
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatError("bad"), "bad")
	assert.Contains(t, FormatSuccess("ok"), SuccessIcon)
	assert.Contains(t, FormatTitle("Roast"), BeanIcon)
	assert.Contains(t, FormatWarning("careful"), "careful")
}
