package controller

import m "gooze.dev/pkg/scoped/internal/model"

// Message types.
type runInfoMsg struct {
	scenarios []string
	workers   int
}

type eventMsg struct {
	event m.Event
}

type summaryMsg struct {
	passed int
	failed int
}
