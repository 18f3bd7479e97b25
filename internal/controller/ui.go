// Package controller provides output adapters for presenting scenario runs.
package controller

import (
	"context"

	m "gooze.dev/pkg/scoped/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeDemo StartMode = iota
	ModeBench
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithDemoMode sets the UI to live scenario mode.
func WithDemoMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDemo
	}
}

// WithBenchMode sets the UI to measurement mode.
func WithBenchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBench
	}
}

// UI defines the interface for presenting scenario runs.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunInfo(ctx context.Context, scenarios []string, workers int)
	DisplayEvent(ctx context.Context, event m.Event)
	DisplaySummary(ctx context.Context, passed int, failed int)
	DisplayBenchRows(ctx context.Context, rows []m.BenchRow) error
}
