package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"regionorm/internal/driver"
)

// RunProgress drives a progress view on out while work runs. work receives
// a sink to pass as driver.Options.Progress; the view exits once work
// returns and every event was rendered.
func RunProgress(out io.Writer, title string, files []string, work func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 64)
	model := NewProgressModel(title, files, events)
	prog := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))

	workErr := make(chan error, 1)
	go func() {
		err := work(driver.ChannelSink{Ch: events})
		close(events)
		workErr <- err
	}()

	_, runErr := prog.Run()
	// вью могла выйти раньше (ошибка, ctrl+c): дочитываем события, чтобы work не встал
	go func() {
		for range events {
		}
	}()
	if err := <-workErr; err != nil {
		return err
	}
	return runErr
}
