package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cdecl/internal/driver"
	"cdecl/internal/ui"
)

type checkOutcome struct {
	batch *driver.Batch
	err   error
}

// runCheckWithUI runs driver.CheckFiles in the background and shows its
// progress events until it is done.
func runCheckWithUI(ctx context.Context, title string, files []string, opts *driver.Options) (*driver.Batch, error) {
	if opts == nil {
		return nil, fmt.Errorf("missing check options")
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		batch, err := driver.CheckFiles(ctx, files, &optsCopy)
		outcomeCh <- checkOutcome{batch: batch, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
