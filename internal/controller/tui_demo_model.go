package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "gooze.dev/pkg/scoped/internal/model"
	"gooze.dev/pkg/scoped/pkg"
)

const (
	// tailCapacity bounds how many recent events the live view retains.
	tailCapacity = 256
	// tailLines is how many of those events the live view shows at once.
	tailLines = 8
)

// checkLine pairs a verdict with the scenario that produced it.
type checkLine struct {
	scenario string
	verdict  m.Verdict
}

// demoModel is the Bubble Tea model for a live scenario run. While
// scenarios stream events it shows a progress bar and a tail of recent
// narration; once the summary arrives it switches to a scrollable list
// of check verdicts.
type demoModel struct {
	width  int
	height int

	scenarios []string
	workers   int

	progressBar progress.Model
	current     string // scenario currently narrating
	completed   int    // scenarios fully narrated

	tail   pkg.Ring[m.Event]
	checks []checkLine

	passed   int
	failed   int
	finished bool
	offset   int // Current scroll offset
	quitting bool
}

func newDemoModel() demoModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	// The capacity is a positive constant, so NewRing cannot fail.
	tail, _ := pkg.NewRing[m.Event](tailCapacity)

	return demoModel{
		progressBar: prog,
		tail:        tail,
	}
}

func (dm demoModel) Init() tea.Cmd {
	return nil
}

func (dm demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return dm.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return dm.handleKeyPress(msg)

	case runInfoMsg:
		dm.scenarios = msg.scenarios
		dm.workers = msg.workers

		return dm, nil

	case eventMsg:
		return dm.handleEvent(msg), nil

	case summaryMsg:
		return dm.handleSummary(msg), nil
	}

	return dm, nil
}

func (dm demoModel) handleWindowSize(msg tea.WindowSizeMsg) demoModel {
	dm.width = msg.Width
	dm.height = msg.Height

	dm.progressBar.Width = dm.width - 8
	if dm.progressBar.Width < 20 {
		dm.progressBar.Width = 20
	}

	return dm
}

func (dm demoModel) handleEvent(msg eventMsg) demoModel {
	ev := msg.event

	if dm.current != "" && ev.Scenario != dm.current {
		dm.completed++
	}

	dm.current = ev.Scenario
	dm.tail.Append(ev)

	if ev.Kind == m.EventCheck && ev.Verdict != nil {
		dm.checks = append(dm.checks, checkLine{scenario: ev.Scenario, verdict: *ev.Verdict})

		switch ev.Verdict.Status {
		case m.CheckPassed:
			dm.passed++
		case m.CheckFailed:
			dm.failed++
		case m.CheckSkipped:
		}
	}

	return dm
}

func (dm demoModel) handleSummary(msg summaryMsg) demoModel {
	dm.completed = len(dm.scenarios)
	dm.passed = msg.passed
	dm.failed = msg.failed
	dm.finished = true

	return dm
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (dm demoModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		dm.quitting = true
		return dm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		dm.quitting = true
		return dm, tea.Quit

	case "down", "j":
		return dm.scrollDown(), nil

	case "up", "k":
		return dm.scrollUp(), nil

	case "g", "home":
		dm.offset = 0

		return dm, nil

	case "G", "end":
		dm.offset = dm.maxOffset()

		return dm, nil

	case "d", "pgdown":
		return dm.scrollPageDown(), nil

	case "u", "pgup":
		return dm.scrollPageUp(), nil
	}

	return dm, nil
}

func (dm demoModel) scrollDown() demoModel {
	dm.offset++

	maxOffset := dm.maxOffset()
	if dm.offset > maxOffset {
		dm.offset = maxOffset
	}

	return dm
}

func (dm demoModel) scrollUp() demoModel {
	dm.offset--
	if dm.offset < 0 {
		dm.offset = 0
	}

	return dm
}

func (dm demoModel) scrollPageDown() demoModel {
	dm.offset += dm.itemsPerPage()

	maxOffset := dm.maxOffset()
	if dm.offset > maxOffset {
		dm.offset = maxOffset
	}

	return dm
}

func (dm demoModel) scrollPageUp() demoModel {
	dm.offset -= dm.itemsPerPage()
	if dm.offset < 0 {
		dm.offset = 0
	}

	return dm
}

// itemsPerPage calculates how many verdict lines fit on screen.
func (dm demoModel) itemsPerPage() int {
	if dm.height == 0 {
		return 10 // Default
	}
	// Reserved lines:
	// - Title: 2 lines
	// - Summary: 2 lines
	// - Box border and padding: 4 lines
	// - Footer: 2 lines
	reserved := 10

	available := dm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (dm demoModel) maxOffset() int {
	perPage := dm.itemsPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := len(dm.checks) - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the verdict list is too large to fit.
func (dm demoModel) needsPagination() bool {
	if len(dm.checks) == 0 || dm.height == 0 {
		return false
	}

	return len(dm.checks) > dm.itemsPerPage()
}

func (dm demoModel) progressPercent() float64 {
	if len(dm.scenarios) == 0 {
		return 0
	}

	return float64(dm.completed) / float64(len(dm.scenarios))
}

func (dm demoModel) score() float64 {
	total := dm.passed + dm.failed
	if total == 0 {
		return 0.0
	}

	return float64(dm.passed) / float64(total) * 100
}

func (dm demoModel) View() string {
	if dm.finished {
		return dm.viewResults()
	}

	return dm.viewProgress()
}

func (dm demoModel) viewProgress() string {
	accentColor := lipgloss.Color("6") // Cyan

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	title := titleStyle.Render("Scoped - Dynamic Binding Demo")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Scenarios: %s / %s | Workers: %s | Checks: %s passed, %s failed",
		accentStyle.Render(fmt.Sprintf("%d", dm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", len(dm.scenarios))),
		accentStyle.Render(fmt.Sprintf("%d", dm.workers)),
		accentStyle.Render(fmt.Sprintf("%d", dm.passed)),
		accentStyle.Render(fmt.Sprintf("%d", dm.failed)),
	))

	progressStyle := lipgloss.NewStyle().
		Padding(0, 2)

	progressView := progressStyle.Render(dm.progressBar.ViewAs(dm.progressPercent()))

	tailBox := dm.renderTailBox(accentColor)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(dm.width)

	footer := footerStyle.Render("Press q to quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		tailBox,
		footer,
	)
}

func (dm demoModel) renderTailBox(accentColor lipgloss.Color) string {
	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Margin(1, 1, 1, 0).
		Width(dm.width - 4)

	scenarioStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	unitStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	current := dm.current
	if current == "" {
		current = "starting"
	}

	lines := make([]string, 0, tailLines+1)
	lines = append(lines, scenarioStyle.Render(fmt.Sprintf("Scenario: %s", current)))

	events := dm.tail.Items()
	if len(events) > tailLines {
		events = events[len(events)-tailLines:]
	}

	// Width - Border(2) - Padding(2)
	availableWidth := dm.width - 4 - 2 - 2

	for _, ev := range events {
		prefix := ""
		if ev.Goroutine != "" && ev.Goroutine != mainUnitLabel {
			prefix = unitStyle.Render(fmt.Sprintf("[%s] ", ev.Goroutine))
		}

		lines = append(lines, prefix+truncateLine(eventLabel(ev), availableWidth))
	}

	return contentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// eventLabel returns the one-line form of an event for the live tail.
func eventLabel(ev m.Event) string {
	if ev.Kind == m.EventCheck && ev.Verdict != nil {
		return fmt.Sprintf("[%s] %s", ev.Verdict.Status, ev.Verdict.Name)
	}

	return ev.Text
}

func (dm demoModel) viewResults() string {
	accentColor := lipgloss.Color("6") // Cyan

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	title := titleStyle.Render("Scoped - Demo Results")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Checks: %s | Passed: %s | Failed: %s | Score: %s",
		accentStyle.Render(fmt.Sprintf("%d", len(dm.checks))),
		accentStyle.Render(fmt.Sprintf("%d", dm.passed)),
		accentStyle.Render(fmt.Sprintf("%d", dm.failed)),
		accentStyle.Render(fmt.Sprintf("%.1f%%", dm.score())),
	))

	checksBox := dm.renderChecksBox(accentColor)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(dm.width)

	footer := footerStyle.Render(dm.footerHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		checksBox,
		footer,
	)
}

func (dm demoModel) renderChecksBox(accentColor lipgloss.Color) string {
	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1, 0, 0).
		Padding(0, 1).
		Width(dm.width - 4)

	allLines := dm.buildCheckLines()
	visible := dm.applyPagination(allLines)

	return contentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, visible...))
}

func (dm demoModel) buildCheckLines() []string {
	passStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	skipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray

	// Width - Border(2) - Padding(2)
	availableWidth := dm.width - 4 - 2 - 2
	lines := make([]string, 0, len(dm.checks))

	for _, c := range dm.checks {
		label := fmt.Sprintf("%s: %s", c.scenario, c.verdict.Name)

		switch c.verdict.Status {
		case m.CheckFailed:
			detail := fmt.Sprintf("%s (want %s, got %s)", label, c.verdict.Want, c.verdict.Got)
			lines = append(lines, failStyle.Render(truncateLine("x "+detail, availableWidth)))
		case m.CheckSkipped:
			lines = append(lines, skipStyle.Render(truncateLine("- "+label, availableWidth)))
		case m.CheckPassed:
			lines = append(lines, passStyle.Render(truncateLine("+ "+label, availableWidth)))
		}
	}

	return lines
}

func (dm demoModel) applyPagination(allLines []string) []string {
	if !dm.needsPagination() {
		return allLines
	}

	available := dm.itemsPerPage()
	start := dm.offset
	end := start + available

	if start >= len(allLines) {
		start = len(allLines) - 1
		if start < 0 {
			start = 0
		}
	}

	if end > len(allLines) {
		end = len(allLines)
	}

	return allLines[start:end]
}

func (dm demoModel) footerHelp() string {
	if !dm.needsPagination() {
		return "Press q to quit"
	}

	available := dm.itemsPerPage()
	start := dm.offset + 1

	end := dm.offset + available
	if end > len(dm.checks) {
		end = len(dm.checks)
	}

	return fmt.Sprintf("Checks %d-%d of %d | k/j: up/down | g/G: top/bottom | q: quit",
		start, end, len(dm.checks))
}

func truncateLine(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "..."

	maxWidth := width - len(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0
	result := make([]rune, 0, len(text))

	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
