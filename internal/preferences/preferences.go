// Package preferences remembers default temperatures for the Yellowing and
// First Crack stages between calculations.
//
// Remembered values only ever pre-fill blank input on the caller side; the
// calculation itself never sees a substituted value it was not given.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/service"
)

// ErrNotRememberable is returned for stages without a remembered default.
var ErrNotRememberable = errors.New("stage has no remembered default")

const keyPrefix = "default_temperature."

// RememberedStages are the stages whose temperatures can be remembered.
var RememberedStages = []model.Stage{model.StageYellowing, model.StageFirstCrack}

// Defaults reads and writes remembered temperatures through a PreferenceStore.
type Defaults struct {
	store service.PreferenceStore
}

// New wraps store.
func New(store service.PreferenceStore) *Defaults {
	return &Defaults{store: store}
}

// Rememberable reports whether stage can have a remembered default.
func Rememberable(stage model.Stage) bool {
	for _, s := range RememberedStages {
		if s == stage {
			return true
		}
	}
	return false
}

func key(stage model.Stage) (string, error) {
	if !Rememberable(stage) {
		return "", fmt.Errorf("%w: %s", ErrNotRememberable, stage)
	}
	return keyPrefix + stage.Key(), nil
}

// Temperature returns the remembered temperature for stage.
// ok is false when nothing has been remembered yet.
func (d *Defaults) Temperature(ctx context.Context, stage model.Stage) (float64, bool, error) {
	k, err := key(stage)
	if err != nil {
		return 0, false, err
	}

	raw, err := d.store.GetPreference(ctx, k)
	if errors.Is(err, common.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("stored default for %s is corrupt: %w", stage, err)
	}
	return v, true, nil
}

// Remember stores value as the default temperature for stage.
func (d *Defaults) Remember(ctx context.Context, stage model.Stage, value float64) error {
	k, err := key(stage)
	if err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("cannot remember non-finite temperature for %s", stage)
	}
	return d.store.SetPreference(ctx, k, strconv.FormatFloat(value, 'f', -1, 64))
}

// Forget clears the remembered temperature for stage.
func (d *Defaults) Forget(ctx context.Context, stage model.Stage) error {
	k, err := key(stage)
	if err != nil {
		return err
	}
	return d.store.DeletePreference(ctx, k)
}

// All returns every remembered temperature keyed by stage.
func (d *Defaults) All(ctx context.Context) (map[model.Stage]float64, error) {
	out := make(map[model.Stage]float64, len(RememberedStages))
	for _, stage := range RememberedStages {
		v, ok, err := d.Temperature(ctx, stage)
		if err != nil {
			return nil, err
		}
		if ok {
			out[stage] = v
		}
	}
	return out, nil
}

// Apply returns a copy of raw where blank Yellowing and First Crack
// temperatures are filled from remembered defaults. Text the user typed is
// never replaced.
func (d *Defaults) Apply(ctx context.Context, raw model.RawInputs) (model.RawInputs, error) {
	out := raw.Clone()
	for _, stage := range RememberedStages {
		in := out[stage]
		if strings.TrimSpace(in.Temperature) != "" {
			continue
		}

		v, ok, err := d.Temperature(ctx, stage)
		if err != nil {
			return nil, err
		}
		if ok {
			in.Temperature = FormatTemperature(v)
			out[stage] = in
		}
	}
	return out, nil
}

// RememberFrom stores the Yellowing and First Crack temperatures of raw.
// Call it only after a successful calculation so that invalid text is never kept.
func (d *Defaults) RememberFrom(ctx context.Context, raw model.RawInputs) error {
	for _, stage := range RememberedStages {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw[stage].Temperature), 64)
		if err != nil {
			return fmt.Errorf("cannot remember %s temperature: %w", stage, err)
		}
		if err := d.Remember(ctx, stage, v); err != nil {
			return err
		}
	}
	return nil
}

// FormatTemperature renders a remembered value as input text.
func FormatTemperature(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
