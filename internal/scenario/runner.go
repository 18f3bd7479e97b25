package scenario

import (
	"context"
	"log/slog"

	m "gooze.dev/pkg/scoped/internal/model"
)

// Runner streams scenario events for presentation.
type Runner interface {
	Stream(ctx context.Context, scenarios []Scenario) <-chan m.Event
}

type runner struct {
	buffer int
}

// NewRunner creates a Runner whose stream buffers up to buffer events.
func NewRunner(buffer int) Runner {
	return &runner{buffer: buffer}
}

// Stream runs the scenarios in order and forwards their events.
// The channel closes when done or when ctx is cancelled.
func (r *runner) Stream(ctx context.Context, scenarios []Scenario) <-chan m.Event {
	slog.Debug("Starting scenario stream", "scenarios", len(scenarios), "buffer", r.buffer)
	ch := make(chan m.Event, r.normalizeBufferSize(r.buffer))

	go func() {
		defer close(ch)

		for _, s := range scenarios {
			if ctx.Err() != nil {
				slog.Debug("Scenario stream cancelled")
				return
			}

			if !r.runScenario(ctx, s, ch) {
				return
			}
		}
	}()

	return ch
}

// normalizeBufferSize ensures the buffer size is at least 1.
func (r *runner) normalizeBufferSize(buffer int) int {
	if buffer <= 0 {
		return 1
	}

	return buffer
}

// runScenario executes a single scenario and forwards its events.
// Returns false if streaming should stop.
func (r *runner) runScenario(ctx context.Context, s Scenario, ch chan<- m.Event) bool {
	emit := func(e m.Event) {
		select {
		case <-ctx.Done():
		case ch <- e:
		}
	}

	emit(m.Event{Kind: m.EventNote, Scenario: s.Name(), Goroutine: "main", Text: s.Synopsis()})

	slog.Debug("Running scenario", "scenario", s.Name())

	if err := s.Run(ctx, emit); err != nil {
		if ctx.Err() != nil {
			slog.Debug("Scenario cancelled", "scenario", s.Name())
			return false
		}

		slog.Error("Scenario failed", "scenario", s.Name(), "error", err)
		emit(m.Event{Kind: m.EventCheck, Scenario: s.Name(), Goroutine: "main", Verdict: &m.Verdict{
			Name:   "scenario completed",
			Status: m.CheckFailed,
			Want:   "no error",
			Got:    err.Error(),
		}})

		return true
	}

	slog.Debug("Scenario completed", "scenario", s.Name())

	return true
}
