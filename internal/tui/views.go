package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/cli"
	"github.com/Veraticus/the-roast-must-rise/internal/common"
	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(cli.BeanIcon + " Rate of Rise"))
	b.WriteString("\n")
	b.WriteString(m.renderFields())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render(cli.ErrorIcon + " " + common.Message(m.err)))
		b.WriteString("\n")
	case m.results != nil:
		b.WriteString("\n")
		b.WriteString(cli.FormatResultsTable(*m.results))
		b.WriteString("\n")
		b.WriteString(m.renderShares())
	}

	if m.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render("could not remember defaults: " + m.saveErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(m.help.View(m.keymap)))

	return m.theme.RoundedBox.Render(b.String())
}

func (m Model) renderFields() string {
	focusStage, _ := m.Focused()

	rows := make([]string, 0, model.StageCount)
	for _, stage := range model.Stages {
		label := m.theme.Label
		if stage == focusStage {
			label = m.theme.FocusedLabel
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render(stage.String()),
			m.inputs[index(stage, FieldTemperature)].View(),
			m.theme.Unit.Render(" °C  "),
			m.inputs[index(stage, FieldTime)].View(),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// shareBarWidth fits the share bars to the terminal width.
func (m Model) shareBarWidth() int {
	return min(max(m.width-40, 10), 40)
}

// renderShares draws one bar per phase showing its share of total time.
func (m Model) renderShares() string {
	bar := progress.New(
		progress.WithSolidFill(string(m.theme.Primary)),
		progress.WithWidth(m.shareBarWidth()),
		progress.WithoutPercentage(),
	)

	lines := make([]string, 0, len(m.results))
	for _, p := range m.results {
		lines = append(lines, fmt.Sprintf("%-14s %s %5.1f%%",
			p.Label, bar.ViewAs(p.PercentageOfTotal/100), p.PercentageOfTotal))
	}
	return strings.Join(lines, "\n")
}
