// Package model defines the data structures for the demo scenarios.
package model

// EventKind represents the category of a scenario event.
type EventKind string

const (
	// EventScope marks entering or leaving a binding scope.
	EventScope EventKind = "scope"
	// EventResolve marks a key lookup and its outcome.
	EventResolve EventKind = "resolve"
	// EventSpawn marks work handed to another goroutine.
	EventSpawn EventKind = "spawn"
	// EventCheck marks a scenario check and its verdict.
	EventCheck EventKind = "check"
	// EventNote marks free-form narration.
	EventNote EventKind = "note"
)

// Event is one step in a scenario's narration stream.
type Event struct {
	Seq       int
	Kind      EventKind
	Scenario  string
	Goroutine string // logical unit of work, e.g. "main" or "worker-2"
	Depth     int    // scope nesting depth when the event fired
	Text      string
	Chain     []ChainRow // bindings visible at this point, nearest first
	Verdict   *Verdict   // set for EventCheck
}

// ChainRow describes one binding visible from a resolution point.
type ChainRow struct {
	Key         string
	Type        string
	Value       string
	Depth       int
	Inheritable bool
	Shadowed    bool
}

// CheckStatus represents the outcome of a scenario check.
type CheckStatus int

const (
	// CheckPassed indicates the observed behavior matched the expectation.
	CheckPassed CheckStatus = iota
	// CheckFailed indicates the observed behavior diverged from the expectation.
	CheckFailed
	// CheckSkipped indicates the check did not run.
	CheckSkipped
)

// String returns the short label used when printing a check outcome.
func (s CheckStatus) String() string {
	switch s {
	case CheckPassed:
		return "pass"
	case CheckFailed:
		return "FAIL"
	case CheckSkipped:
		return "skip"
	default:
		return "unknown"
	}
}

// Verdict records a named check and what it observed.
type Verdict struct {
	Name   string
	Status CheckStatus
	Want   string
	Got    string
}

// BenchRow holds one timed measurement from the bench command.
type BenchRow struct {
	Name       string
	Depth      int
	Width      int
	Iterations int
	NsPerOp    float64
}
