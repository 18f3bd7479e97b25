// Package scenario implements the runnable demonstrations behind the
// demo command. Each scenario exercises one aspect of scoped bindings
// and narrates what it observes as a stream of events.
package scenario

import (
	"context"
	"fmt"
	"sync"

	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

// Scenario is one self-contained demonstration.
type Scenario interface {
	Name() string
	Synopsis() string
	Run(ctx context.Context, emit func(m.Event)) error
}

// All returns the built-in scenarios in presentation order. The workers
// argument sets the fan-out width of the spawning scenarios.
func All(workers int) []Scenario {
	return []Scenario{
		NewExtent(),
		NewShadow(),
		NewTyped(),
		NewRecurse(),
		NewInherit(workers),
		NewPool(workers),
	}
}

// ByName finds a built-in scenario by name.
func ByName(name string, workers int) (Scenario, error) {
	for _, s := range All(workers) {
		if s.Name() == name {
			return s, nil
		}
	}

	return nil, fmt.Errorf("unknown scenario %q", name)
}

const defaultWorkers = 2

func normalizeWorkers(workers int) int {
	if workers < 1 {
		return defaultWorkers
	}

	return workers
}

// narrator numbers and labels the events a scenario emits. Its methods
// are safe to call from spawned goroutines.
type narrator struct {
	scenario string
	emit     func(m.Event)

	mu  sync.Mutex
	seq int
}

func newNarrator(scenario string, emit func(m.Event)) *narrator {
	return &narrator{scenario: scenario, emit: emit}
}

func (n *narrator) send(e m.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	e.Seq = n.seq
	e.Scenario = n.scenario
	n.emit(e)
}

func (n *narrator) note(unit string, depth int, format string, args ...any) {
	n.send(m.Event{Kind: m.EventNote, Goroutine: unit, Depth: depth, Text: fmt.Sprintf(format, args...)})
}

func (n *narrator) scope(unit string, depth int, format string, args ...any) {
	n.send(m.Event{Kind: m.EventScope, Goroutine: unit, Depth: depth, Text: fmt.Sprintf(format, args...)})
}

func (n *narrator) spawn(unit string, depth int, format string, args ...any) {
	n.send(m.Event{Kind: m.EventSpawn, Goroutine: unit, Depth: depth, Text: fmt.Sprintf(format, args...)})
}

func (n *narrator) read(unit string, depth int, format string, args ...any) {
	n.send(m.Event{Kind: m.EventResolve, Goroutine: unit, Depth: depth, Text: fmt.Sprintf(format, args...)})
}

// resolve emits the bindings visible in ctx alongside the text.
func (n *narrator) resolve(ctx context.Context, unit string, depth int, text string) {
	n.send(m.Event{Kind: m.EventResolve, Goroutine: unit, Depth: depth, Text: text, Chain: chainRows(ctx)})
}

func (n *narrator) check(name string, ok bool, want, got string) {
	status := m.CheckPassed
	if !ok {
		status = m.CheckFailed
	}

	n.send(m.Event{Kind: m.EventCheck, Goroutine: "main", Verdict: &m.Verdict{
		Name:   name,
		Status: status,
		Want:   want,
		Got:    got,
	}})
}

// chainRows converts the bindings visible in ctx into presentation rows.
func chainRows(ctx context.Context) []m.ChainRow {
	infos := scoped.Describe(ctx)
	rows := make([]m.ChainRow, 0, len(infos))

	for _, info := range infos {
		rows = append(rows, m.ChainRow{
			Key:         info.Key.Name(),
			Type:        info.Key.ValueType().String(),
			Value:       fmt.Sprintf("%v", info.Value),
			Depth:       info.Depth,
			Inheritable: info.Key.Inheritable(),
			Shadowed:    info.Shadowed,
		})
	}

	return rows
}

func boundState(bound bool) string {
	if bound {
		return "bound"
	}

	return "unbound"
}
