package testutil

import "github.com/Veraticus/the-roast-must-rise/internal/model"

// Fixture is a named set of raw checkpoints.
type Fixture struct {
	Name string
	Raw  model.RawInputs
}

// Inputs returns a copy of the fixture's raw checkpoints that tests may modify.
func (f Fixture) Inputs() model.RawInputs {
	return f.Raw.Clone()
}

// Predefined fixtures for common test scenarios.
var (
	// FixtureTypical is a ten minute roast with round numbers:
	// rates 5, 4.33 and 4.5 °C/min, shares 20%, 60% and 20%.
	FixtureTypical = Fixture{
		Name: "typical",
		Raw: model.RawInputs{
			model.StageTurningPoint: {Temperature: "160", Time: "00:00"},
			model.StageYellowing:    {Temperature: "170", Time: "02:00"},
			model.StageFirstCrack:   {Temperature: "196", Time: "08:00"},
			model.StageDrop:         {Temperature: "205", Time: "10:00"},
		},
	}

	// FixtureFlatFinish drops at the first crack temperature.
	FixtureFlatFinish = Fixture{
		Name: "flat finish",
		Raw: model.RawInputs{
			model.StageTurningPoint: {Temperature: "90", Time: "1:00"},
			model.StageYellowing:    {Temperature: "150", Time: "4:00"},
			model.StageFirstCrack:   {Temperature: "195", Time: "9:00"},
			model.StageDrop:         {Temperature: "195", Time: "11:00"},
		},
	}
)

// TypicalYAML is FixtureTypical as a snapshot file.
const TypicalYAML = `turning_point: {temperature: "160", time: "00:00"}
yellowing:     {temperature: "170", time: "02:00"}
first_crack:   {temperature: "196", time: "08:00"}
drop:          {temperature: "205", time: "10:00"}
`
