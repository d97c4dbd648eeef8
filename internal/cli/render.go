package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/roast"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// PhaseRow is the presentation form of a phase result.
// Rate is rounded to two decimals and share to one.
type PhaseRow struct {
	Phase           string  `json:"phase" yaml:"phase"`
	Duration        string  `json:"duration" yaml:"duration"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
	RatePerMinute   float64 `json:"rate_per_minute" yaml:"rate_per_minute"`
	Percentage      float64 `json:"percentage" yaml:"percentage"`
}

// Report is the document written for json and yaml output.
type Report struct {
	Phases       []PhaseRow `json:"phases" yaml:"phases"`
	TotalTime    string     `json:"total_time" yaml:"total_time"`
	TotalSeconds float64    `json:"total_seconds" yaml:"total_seconds"`
}

// NewReport converts results into their presentation form.
func NewReport(results model.PhaseResults) Report {
	r := Report{Phases: make([]PhaseRow, 0, len(results))}
	for _, p := range results {
		r.Phases = append(r.Phases, PhaseRow{
			Phase:           p.Label,
			Duration:        roast.FormatSecondsToTime(p.DurationSeconds),
			DurationSeconds: p.DurationSeconds,
			RatePerMinute:   round(p.RatePerMinute, 2),
			Percentage:      round(p.PercentageOfTotal, 1),
		})
		r.TotalSeconds += p.DurationSeconds
	}
	r.TotalTime = roast.FormatSecondsToTime(r.TotalSeconds)
	return r
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// RenderResults writes results to w in the given format (table, json or yaml).
func RenderResults(w io.Writer, results model.PhaseResults, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(results))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(results)); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		_, err := fmt.Fprintln(w, FormatResultsTable(results))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatResultsTable renders results as a bordered table with a total line.
func FormatResultsTable(results model.PhaseResults) string {
	report := NewReport(results)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers("Phase", "Duration", "ROR (°/min)", "Share").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	for _, p := range report.Phases {
		t.Row(
			p.Phase,
			p.Duration,
			fmt.Sprintf("%.2f", p.RatePerMinute),
			fmt.Sprintf("%.1f%%", p.Percentage),
		)
	}

	total := SubtleStyle.Render("Total roast time (TP → Drop): " + report.TotalTime)
	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), total)
}
