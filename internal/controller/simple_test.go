package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	m "gooze.dev/pkg/scoped/internal/model"
)

func newBufferedSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayRunInfo(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplayRunInfo(context.Background(), []string{"extent", "shadow"}, 4)

	output := buf.String()
	if !strings.Contains(output, "Running 2 scenario(s) with 4 worker(s): extent, shadow") {
		t.Fatalf("output missing run info\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplayEvent_PrintsScenarioHeaders(t *testing.T) {
	ui, buf := newBufferedSimpleUI()
	ctx := context.Background()

	ui.DisplayEvent(ctx, m.Event{Kind: m.EventNote, Scenario: "extent", Goroutine: "main", Text: "first"})
	ui.DisplayEvent(ctx, m.Event{Kind: m.EventNote, Scenario: "extent", Goroutine: "main", Text: "second"})
	ui.DisplayEvent(ctx, m.Event{Kind: m.EventNote, Scenario: "shadow", Goroutine: "main", Text: "third"})

	output := buf.String()

	for _, want := range []string{"=== extent ===", "=== shadow ===", "first", "second", "third"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}

	if strings.Count(output, "=== extent ===") != 1 {
		t.Fatalf("scenario header repeated\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplayEvent_IndentsAndLabelsUnits(t *testing.T) {
	ui, buf := newBufferedSimpleUI()
	ctx := context.Background()

	ui.DisplayEvent(ctx, m.Event{Kind: m.EventScope, Scenario: "extent", Goroutine: "main", Depth: 2, Text: "entered inner"})
	ui.DisplayEvent(ctx, m.Event{Kind: m.EventResolve, Scenario: "extent", Goroutine: "worker-1", Depth: 1, Text: "user is bound"})

	output := buf.String()

	if !strings.Contains(output, "    entered inner") {
		t.Fatalf("output missing indented line\noutput:\n%s", output)
	}

	if !strings.Contains(output, "[worker-1] user is bound") {
		t.Fatalf("output missing unit label\noutput:\n%s", output)
	}

	if strings.Contains(output, "[main]") {
		t.Fatalf("main unit should not be labelled\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplayEvent_RendersChainTable(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplayEvent(context.Background(), m.Event{
		Kind:     m.EventResolve,
		Scenario: "shadow",
		Text:     "bindings visible here",
		Chain: []m.ChainRow{
			{Key: "user", Type: "string", Value: "runa", Depth: 2, Inheritable: true},
			{Key: "user", Type: "string", Value: "ana", Depth: 1, Inheritable: true, Shadowed: true},
			{Key: "region", Type: "string", Value: "eu-west", Depth: 1, Inheritable: false},
		},
	})

	output := buf.String()

	for _, want := range []string{"KEY", "TYPE", "VALUE", "DEPTH", "INHERIT", "SHADOWED", "user", "runa", "eu-west", "yes", "no"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayEvent_Verdicts(t *testing.T) {
	ui, buf := newBufferedSimpleUI()
	ctx := context.Background()

	ui.DisplayEvent(ctx, m.Event{
		Kind:     m.EventCheck,
		Scenario: "typed",
		Verdict:  &m.Verdict{Name: "binding visible inside", Status: m.CheckPassed, Want: "bound", Got: "bound"},
	})
	ui.DisplayEvent(ctx, m.Event{
		Kind:     m.EventCheck,
		Scenario: "typed",
		Verdict:  &m.Verdict{Name: "restored after exit", Status: m.CheckFailed, Want: "unbound", Got: "bound"},
	})

	output := buf.String()

	if !strings.Contains(output, "[pass] binding visible inside") {
		t.Fatalf("output missing passing verdict\noutput:\n%s", output)
	}

	if !strings.Contains(output, "[FAIL] restored after exit") {
		t.Fatalf("output missing failing verdict\noutput:\n%s", output)
	}

	if !strings.Contains(output, "want unbound, got bound") {
		t.Fatalf("output missing failure detail\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplaySummary(context.Background(), 5, 1)

	output := buf.String()
	if !strings.Contains(output, "Checks: 5 passed, 1 failed | Score: 83.3%") {
		t.Fatalf("output missing summary\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplaySummary_NoChecks(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplaySummary(context.Background(), 0, 0)

	output := buf.String()
	if !strings.Contains(output, "Score: 0.0%") {
		t.Fatalf("output missing zero score\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplayBenchRows(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	rows := []m.BenchRow{
		{Name: "get/nearest", Depth: 8, Width: 16, Iterations: 50000, NsPerOp: 41.5},
		{Name: "scope/enter-exit", Depth: 8, Width: 16, Iterations: 50000, NsPerOp: 180.2},
	}

	if err := ui.DisplayBenchRows(context.Background(), rows); err != nil {
		t.Fatalf("DisplayBenchRows() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{"MEASUREMENT", "NS/OP", "get/nearest", "scope/enter-exit", "41.5", "180.2", "TOTAL 2"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_CancelledContext_Silent(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.Start(ctx); err == nil {
		t.Fatalf("Start() expected error for cancelled context")
	}

	ui.DisplayRunInfo(ctx, []string{"extent"}, 1)
	ui.DisplayEvent(ctx, m.Event{Kind: m.EventNote, Scenario: "extent", Text: "hidden"})
	ui.DisplaySummary(ctx, 1, 0)

	if err := ui.DisplayBenchRows(ctx, nil); err == nil {
		t.Fatalf("DisplayBenchRows() expected error for cancelled context")
	}

	if buf.Len() != 0 {
		t.Fatalf("cancelled context should produce no output, got:\n%s", buf.String())
	}
}
