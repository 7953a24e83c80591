package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vlisp/internal/pipeline"
	"vlisp/internal/ui"
)

type checkOutcome struct {
	result *pipeline.CheckResult
	err    error
}

// runCheckWithUI runs pipeline.Check behind a bubbletea progress screen.
// The pipeline feeds a buffered event channel that the model drains; the
// channel closes when the run finishes, which quits the program.
func runCheckWithUI(ctx context.Context, title string, files []string, req *pipeline.CheckRequest) (*pipeline.CheckResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing check request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Check(ctx, reqCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
