package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits and returns the final model.
func Run(ctx context.Context, opts ...Option) (Model, error) {
	m := New(opts...)

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m, fmt.Errorf("form failed: %w", err)
	}

	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
