package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/scoped/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd          *cobra.Command
	lastScenario string
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunInfo announces the scenarios and worker count for this run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, scenarios []string, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d scenario(s) with %d worker(s): %s\n",
		len(scenarios), workers, strings.Join(scenarios, ", "))
}

// DisplayEvent prints one scenario event. A scenario header is printed
// whenever the stream moves on to the next scenario.
func (s *SimpleUI) DisplayEvent(ctx context.Context, event m.Event) {
	if err := ctx.Err(); err != nil {
		return
	}

	if event.Scenario != s.lastScenario {
		s.printf("\n=== %s ===\n", event.Scenario)
		s.lastScenario = event.Scenario
	}

	switch event.Kind {
	case m.EventCheck:
		s.printVerdict(event)
	case m.EventResolve:
		s.printLine(event)

		if len(event.Chain) > 0 {
			s.printf("%s", renderChainTable(event.Chain))
		}
	case m.EventScope, m.EventSpawn, m.EventNote:
		s.printLine(event)
	}
}

func (s *SimpleUI) printLine(event m.Event) {
	indent := strings.Repeat("  ", event.Depth)

	unit := ""
	if event.Goroutine != "" && event.Goroutine != mainUnitLabel {
		unit = fmt.Sprintf("[%s] ", event.Goroutine)
	}

	s.printf("%s%s%s\n", indent, unit, event.Text)
}

func (s *SimpleUI) printVerdict(event m.Event) {
	if event.Verdict == nil {
		s.printLine(event)
		return
	}

	verdict := event.Verdict
	indent := strings.Repeat("  ", event.Depth)

	s.printf("%s[%s] %s\n", indent, verdict.Status, verdict.Name)

	if verdict.Status == m.CheckFailed {
		s.printf("%s  want %s, got %s\n", indent, verdict.Want, verdict.Got)
	}
}

// DisplaySummary prints the final tally for the run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, passed int, failed int) {
	if err := ctx.Err(); err != nil {
		return
	}

	total := passed + failed

	score := 0.0
	if total > 0 {
		score = float64(passed) / float64(total) * 100
	}

	s.printf("\nChecks: %d passed, %d failed | Score: %.1f%%\n", passed, failed, score)
}

// DisplayBenchRows prints the measurement table.
func (s *SimpleUI) DisplayBenchRows(ctx context.Context, rows []m.BenchRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderBenchTable(rows))

	return nil
}

func renderChainTable(chain []m.ChainRow) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Key", "Type", "Value", "Depth", "Inherit", "Shadowed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, row := range chain {
		table.Append([]string{
			row.Key,
			row.Type,
			row.Value,
			fmt.Sprintf("%d", row.Depth),
			boolLabel(row.Inheritable),
			boolLabel(row.Shadowed),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func renderBenchTable(rows []m.BenchRow) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Measurement", "Depth", "Width", "Iterations", "NS/OP"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
	})

	for _, row := range rows {
		table.Append([]string{
			row.Name,
			fmt.Sprintf("%d", row.Depth),
			fmt.Sprintf("%d", row.Width),
			fmt.Sprintf("%d", row.Iterations),
			fmt.Sprintf("%.1f", row.NsPerOp),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(rows)),
		"", "", "", "",
	})

	table.Render()

	return tableBuffer.String()
}

func boolLabel(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

const mainUnitLabel = "main"
