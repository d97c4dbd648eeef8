package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/Veraticus/the-roast-must-rise/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func newTestDefaults(t *testing.T) *preferences.Defaults {
	t.Helper()
	return testutil.SetupTestDB(t, nil).Defaults
}

func writeSnapshot(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "roast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"calc", "form", "watch", "serve", "defaults", "version"} {
		assert.NotNil(t, findSubcommand(rootCmd, name), "missing subcommand %s", name)
	}

	defaults := findSubcommand(rootCmd, "defaults")
	require.NotNil(t, defaults)
	for _, name := range []string{"list", "set", "clear"} {
		assert.NotNil(t, findSubcommand(defaults, name), "missing defaults subcommand %s", name)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Equal(t, "roast version dev\n", out.String())
}

func TestCalcCmd_StageFlags(t *testing.T) {
	cmd := calcCmd()

	for _, name := range []string{"tp-temp", "tp-time", "yellow-temp", "yellow-time", "fc-temp", "fc-time", "drop-temp", "drop-time"} {
		assert.NotNil(t, cmd.Flag(name), "missing flag %s", name)
	}
	assert.NotNil(t, cmd.Flag("file"))
	assert.NotNil(t, cmd.Flag("interactive"))
	assert.NotNil(t, cmd.Flag("remember"))
	assert.NotNil(t, cmd.Flag("output"))
}

func TestRawInputsFromFlags(t *testing.T) {
	cmd := calcCmd()
	require.NoError(t, cmd.Flags().Set("tp-temp", "160"))
	require.NoError(t, cmd.Flags().Set("tp-time", "0:00"))
	require.NoError(t, cmd.Flags().Set("drop-time", "10:00"))

	raw, err := rawInputsFromFlags(cmd.Flags(), "")
	require.NoError(t, err)

	assert.Equal(t, model.RawInputs{
		model.StageTurningPoint: {Temperature: "160", Time: "0:00"},
		model.StageDrop:         {Time: "10:00"},
	}, raw)
}

func TestRawInputsFromFlags_FlagsOverrideFile(t *testing.T) {
	path := writeSnapshot(t, t.TempDir(), testutil.TypicalYAML)

	cmd := calcCmd()
	require.NoError(t, cmd.Flags().Set("fc-temp", "198"))

	raw, err := rawInputsFromFlags(cmd.Flags(), path)
	require.NoError(t, err)

	want := testutil.FixtureTypical.Inputs()
	want[model.StageFirstCrack] = model.RawCheckpointInput{Temperature: "198", Time: "08:00"}
	assert.Equal(t, want, raw)
}

func TestRawInputsFromFlags_MissingFile(t *testing.T) {
	_, err := rawInputsFromFlags(calcCmd().Flags(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCalc_JSON(t *testing.T) {
	defaults := newTestDefaults(t)
	var out bytes.Buffer

	err := runCalc(context.Background(), defaults, testutil.FixtureTypical.Inputs(), calcOptions{}, nil, &out, "json")
	require.NoError(t, err)

	var report struct {
		TotalSeconds float64 `json:"total_seconds"`
		Phases       []struct {
			Phase         string  `json:"phase"`
			RatePerMinute float64 `json:"rate_per_minute"`
		} `json:"phases"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Phases, 3)
	assert.Equal(t, 600.0, report.TotalSeconds)
	assert.InDelta(t, 4.33, report.Phases[1].RatePerMinute, 1e-9)
}

func TestRunCalc_NoInput(t *testing.T) {
	err := runCalc(context.Background(), newTestDefaults(t), model.RawInputs{}, calcOptions{}, nil, &bytes.Buffer{}, "table")
	assert.ErrorIs(t, err, common.ErrNoInput)
}

func TestRunCalc_ValidationError(t *testing.T) {
	raw := testutil.FixtureTypical.Inputs()
	raw[model.StageDrop] = model.RawCheckpointInput{Temperature: "205", Time: "5:70"}

	var out bytes.Buffer
	err := runCalc(context.Background(), newTestDefaults(t), raw, calcOptions{}, nil, &out, "table")

	var fieldErr *roast.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, model.StageDrop, fieldErr.Stage)
	assert.Empty(t, out.String(), "nothing is rendered for a failed calculation")
}

func TestRunCalc_DefaultsAndRemember(t *testing.T) {
	ctx := context.Background()
	defaults := newTestDefaults(t)
	require.NoError(t, defaults.Remember(ctx, model.StageYellowing, 170))

	raw := testutil.FixtureTypical.Inputs()
	raw[model.StageYellowing] = model.RawCheckpointInput{Time: "02:00"}
	raw[model.StageFirstCrack] = model.RawCheckpointInput{Temperature: "195", Time: "08:00"}

	err := runCalc(ctx, defaults, raw, calcOptions{noDefaults: true}, nil, &bytes.Buffer{}, "table")
	require.Error(t, err, "blank temperature stays blank without defaults")

	err = runCalc(ctx, defaults, raw, calcOptions{remember: true}, nil, &bytes.Buffer{}, "table")
	require.NoError(t, err)

	all, err := defaults.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[model.Stage]float64{
		model.StageYellowing:  170,
		model.StageFirstCrack: 195,
	}, all)
}

func TestRunCalc_Interactive(t *testing.T) {
	ctx := context.Background()
	defaults := newTestDefaults(t)
	require.NoError(t, defaults.Remember(ctx, model.StageFirstCrack, 196))

	in := strings.NewReader("160\n0:00\n170\n2:00\n\n8:00\n205\n10:00\n")
	var out bytes.Buffer

	err := runCalc(ctx, defaults, nil, calcOptions{interactive: true}, in, &out, "yaml")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "total_seconds: 600")
}

func TestRunWatch_RendersOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, testutil.TypicalYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, path, nil, out, "json") }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), `"total_seconds"`) == 1
	}, 5*time.Second, 20*time.Millisecond)

	// Give the watcher time to register before the write.
	time.Sleep(100 * time.Millisecond)
	bad := strings.Replace(testutil.TypicalYAML, `"10:00"`, `"07:00"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Drop time")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestDefaultsCommands(t *testing.T) {
	ctx := context.Background()
	defaults := newTestDefaults(t)
	var out bytes.Buffer

	require.NoError(t, setDefault(ctx, defaults, &out, "yellowing", "171.5"))
	require.NoError(t, setDefault(ctx, defaults, &out, "FC", "196"))

	out.Reset()
	require.NoError(t, listDefaults(ctx, defaults, &out))
	assert.Contains(t, out.String(), "171.5 °C")
	assert.Contains(t, out.String(), "196 °C")

	require.NoError(t, clearDefault(ctx, defaults, &out, "yellowing"))
	_, ok, err := defaults.Temperature(ctx, model.StageYellowing)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultsCommands_Rejections(t *testing.T) {
	ctx := context.Background()
	defaults := newTestDefaults(t)
	var out bytes.Buffer

	err := setDefault(ctx, defaults, &out, "second_crack", "200")
	assert.Error(t, err)

	err = setDefault(ctx, defaults, &out, "drop", "200")
	assert.ErrorIs(t, err, preferences.ErrNotRememberable)

	err = setDefault(ctx, defaults, &out, "yellowing", "warm")
	assert.Error(t, err)
	assert.Equal(t, `invalid temperature "warm"`, common.Message(err))

	err = clearDefault(ctx, defaults, &out, "turning_point")
	assert.ErrorIs(t, err, preferences.ErrNotRememberable)
}
