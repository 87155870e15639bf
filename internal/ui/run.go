package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tidy/internal/pipeline"
)

// Run shows the progress screen on out until events is closed or ctx ends.
func Run(ctx context.Context, out io.Writer, title string, files []string, events <-chan pipeline.Event) error {
	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))
	_, err := program.Run()
	return err
}
