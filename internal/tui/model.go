// Package tui implements the interactive roast checkpoint form.
package tui

import (
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/Veraticus/the-roast-must-rise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field selects the temperature or time input of a stage.
type Field int

const (
	FieldTemperature Field = iota
	FieldTime
)

const fieldCount = model.StageCount * 2

// savedMsg reports the outcome of the OnCalculated callback.
type savedMsg struct {
	err error
}

// Model holds the form state.
type Model struct {
	theme    themes.Theme
	err      error
	saveErr  error
	results  *model.PhaseResults
	config   Config
	keymap   KeyMap
	help     help.Model
	inputs   [fieldCount]textinput.Model
	focus    int
	width    int
	height   int
	quitting bool
}

// New creates a form model.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

func newModel(cfg Config) Model {
	m := Model{
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		width:  cfg.Width,
		height: cfg.Height,
	}

	for _, stage := range model.Stages {
		temp := textinput.New()
		temp.Placeholder = "°C"
		temp.CharLimit = 8
		temp.Width = 8
		if v, ok := cfg.Defaults[stage]; ok {
			temp.SetValue(preferences.FormatTemperature(v))
		}

		tm := textinput.New()
		tm.Placeholder = "MM:SS"
		tm.CharLimit = 6
		tm.Width = 6

		if in, ok := cfg.Initial[stage]; ok {
			if in.Temperature != "" {
				temp.SetValue(in.Temperature)
			}
			tm.SetValue(in.Time)
		}

		if cfg.TestMode {
			temp.Cursor.SetMode(cursor.CursorStatic)
			tm.Cursor.SetMode(cursor.CursorStatic)
		}

		m.inputs[index(stage, FieldTemperature)] = temp
		m.inputs[index(stage, FieldTime)] = tm
	}

	m.inputs[0].Focus()
	return m
}

func index(stage model.Stage, field Field) int {
	return int(stage)*2 + int(field)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case savedMsg:
		m.saveErr = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keymap.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keymap.Calculate):
			return m, m.calculate()
		case key.Matches(msg, m.keymap.Clear):
			for _, stage := range model.Stages {
				m.inputs[index(stage, FieldTime)].SetValue("")
			}
			m.results, m.err = nil, nil
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			if m.focus == fieldCount-1 {
				return m, m.calculate()
			}
			return m, m.moveFocus(1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

// calculate runs the pipeline over the current field text.
func (m *Model) calculate() tea.Cmd {
	raw := m.RawInputs()

	results, err := roast.Calculate(raw)
	if err != nil {
		m.err = err
		m.results = nil
		return nil
	}

	m.err = nil
	m.results = &results

	if m.config.OnCalculated == nil {
		return nil
	}
	fn := m.config.OnCalculated
	return func() tea.Msg {
		return savedMsg{err: fn(raw, results)}
	}
}

// RawInputs returns a snapshot of the current field text.
func (m Model) RawInputs() model.RawInputs {
	raw := make(model.RawInputs, model.StageCount)
	for _, stage := range model.Stages {
		raw[stage] = model.RawCheckpointInput{
			Temperature: m.inputs[index(stage, FieldTemperature)].Value(),
			Time:        m.inputs[index(stage, FieldTime)].Value(),
		}
	}
	return raw
}

// SetValue replaces the text of one field.
func (m *Model) SetValue(stage model.Stage, field Field, value string) {
	m.inputs[index(stage, field)].SetValue(value)
}

// Results returns the latest successful calculation, if any.
func (m Model) Results() (model.PhaseResults, bool) {
	if m.results == nil {
		return model.PhaseResults{}, false
	}
	return *m.results, true
}

// Err returns the error from the latest calculation attempt.
func (m Model) Err() error {
	return m.err
}

// SaveErr returns the error from the latest OnCalculated callback.
func (m Model) SaveErr() error {
	return m.saveErr
}

// Focused returns the stage and field that currently has focus.
func (m Model) Focused() (model.Stage, Field) {
	return model.Stage(m.focus / 2), Field(m.focus % 2)
}
