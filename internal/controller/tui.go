package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	m "gooze.dev/pkg/scoped/internal/model"
	"golang.org/x/term"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	started bool
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program for the requested mode. Bench mode
// never needs an interactive program, its output is a single static table.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &StartConfig{}
	for _, option := range options {
		option(cfg)
	}

	if cfg.mode == ModeBench {
		return nil
	}

	return t.startWithModel(t.sizedModel(newDemoModel()))
}

// sizedModel seeds the model with the current terminal size so the first
// frame is laid out before the initial WindowSizeMsg arrives.
func (t *TUI) sizedModel(model demoModel) demoModel {
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.handleWindowSize(tea.WindowSizeMsg{Width: width, Height: height})
		}
	}

	return model
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	t.done = make(chan struct{})
	t.started = true

	go func(program *tea.Program, done chan struct{}) {
		_, _ = program.Run()
		close(done)
	}(t.program, t.done)

	return nil
}

// send delivers msg to the running program. Messages sent before Start are
// dropped.
func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(msg)
}

// Wait blocks until the user closes the UI or ctx is cancelled.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close shuts the program down and waits for it to exit.
func (t *TUI) Close(ctx context.Context) {
	t.mu.Lock()
	program := t.program
	done := t.done
	t.program = nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayRunInfo announces the scenarios and worker count for this run.
func (t *TUI) DisplayRunInfo(ctx context.Context, scenarios []string, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(runInfoMsg{scenarios: scenarios, workers: workers})
}

// DisplayEvent forwards one scenario event to the live view.
func (t *TUI) DisplayEvent(ctx context.Context, event m.Event) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(eventMsg{event: event})
}

// DisplaySummary flips the live view over to the results screen.
func (t *TUI) DisplaySummary(ctx context.Context, passed int, failed int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(summaryMsg{passed: passed, failed: failed})
}

// DisplayBenchRows prints the measurement table. The table is short, so it
// is written directly instead of through a program.
func (t *TUI) DisplayBenchRows(ctx context.Context, rows []m.BenchRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.output, "\n%s", renderBenchTable(rows))

	return err
}
