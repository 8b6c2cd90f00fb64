package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// Dashboard styles
var (
	statusSafeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	statusDeadStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	watchDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WatchModel - Live snapshot dashboard
// =============================================================================

// snapshotMsg delivers a fresh snapshot to the dashboard.
type snapshotMsg struct {
	snap *snapshot.Snapshot
}

// watchErrMsg reports a failed reload. The dashboard keeps showing the last
// good state alongside the error.
type watchErrMsg struct {
	err error
}

// tickMsg drives the "updated N ago" line.
type tickMsg time.Time

// procState classifies a process row for styling.
type procState int

const (
	stateRunning procState = iota
	stateWaiting
	stateDeadlocked
)

// processRow is one process line plus its wait state.
type processRow struct {
	cells []string
	state procState
}

// WatchModel is the bubbletea model for the live watch dashboard. It shows
// the process and resource tables for the current snapshot with a status
// line that flips between SAFE and DEADLOCK as the file changes.
type WatchModel struct {
	Origin   string
	Interval time.Duration

	snap    *snapshot.Snapshot
	res     detect.Result
	pred    detect.Prediction
	readErr error
	updated time.Time

	procRows []processRow
	resRows  [][]string
}

// NewWatchModel creates a dashboard model seeded with an initial snapshot.
func NewWatchModel(origin string, snap *snapshot.Snapshot, interval time.Duration) WatchModel {
	if interval <= 0 {
		interval = time.Second
	}
	m := WatchModel{Origin: origin, Interval: interval}
	m.apply(snap)
	return m
}

// apply recomputes detection and the table rows for a new snapshot.
func (m *WatchModel) apply(snap *snapshot.Snapshot) {
	ctx := context.Background()
	m.snap = snap
	m.res = detect.Analyze(ctx, snap)
	m.pred = detect.Predict(ctx, snap)
	m.readErr = nil
	m.updated = time.Now()
	m.procRows = buildProcessRows(snap, m.res)
	m.resRows = buildResourceRows(snap)
}

func (m WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case snapshotMsg:
		m.apply(msg.snap)
	case watchErrMsg:
		m.readErr = msg.err
	case tickMsg:
		return m, m.tick()
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Deadlock Watch"))
	b.WriteString(watchDimStyle.Render("  " + m.Origin))
	b.WriteString("\n")
	b.WriteString(watchDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.statusView())
	b.WriteString("\n\n")

	b.WriteString(m.processTable())
	b.WriteString("\n\n")
	b.WriteString(m.resourceTable())
	b.WriteString("\n\n")

	b.WriteString(watchDimStyle.Render(fmt.Sprintf("updated %s ago", time.Since(m.updated).Round(time.Second))))
	if m.readErr != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%s reload failed: %v", iconWarning, m.readErr)))
	}

	return b.String()
}

// statusView renders the SAFE/DEADLOCK banner and the Banker's verdict.
func (m WatchModel) statusView() string {
	var b strings.Builder

	if m.res.HasDeadlock {
		b.WriteString(statusDeadStyle.Render(fmt.Sprintf("%s DEADLOCK — %d cycle(s)", iconError, len(m.res.Cycles))))
		for _, cycle := range m.res.Cycles {
			b.WriteString("\n")
			b.WriteString(statusDeadStyle.Render("  " + fmtCycle(cycle)))
		}
	} else {
		b.WriteString(statusSafeStyle.Render(fmt.Sprintf("%s SAFE — no wait-for cycles", iconSuccess)))
	}

	b.WriteString("\n")
	if m.pred.Safe {
		b.WriteString(watchDimStyle.Render("banker: " + m.pred.Details))
	} else {
		b.WriteString(StyleWarning.Render("banker: " + m.pred.Details))
	}
	return b.String()
}

func (m WatchModel) processTable() string {
	rows := make([][]string, len(m.procRows))
	for i, r := range m.procRows {
		rows[i] = r.cells
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("PID", "Name", "Holds", "Wants", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(m.procRows) {
				return lipgloss.NewStyle()
			}
			switch m.procRows[row].state {
			case stateDeadlocked:
				return lipgloss.NewStyle().Foreground(colorRed)
			case stateWaiting:
				return lipgloss.NewStyle().Foreground(colorYellow)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})
	return t.Render()
}

func (m WatchModel) resourceTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Resource", "Total", "Held", "Free").
		Rows(m.resRows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

// =============================================================================
// Row building
// =============================================================================

// buildProcessRows derives one table row per process: what it holds, what it
// waits for, and whether it sits on a deadlock cycle.
func buildProcessRows(s *snapshot.Snapshot, res detect.Result) []processRow {
	deadlocked := res.Cycles.PIDSet()

	allocKeys := s.AllocationKeys()
	reqKeys := s.RequestKeys()

	rows := make([]processRow, 0, len(s.Processes))
	for _, p := range s.Processes {
		holds := fmtCounts(allocKeys, s.Allocation, p.PID)
		wants := fmtCounts(reqKeys, s.Request, p.PID)

		state := stateRunning
		label := "running"
		switch {
		case deadlocked[p.PID]:
			state = stateDeadlocked
			label = "deadlocked"
		case wants != "":
			state = stateWaiting
			label = "waiting"
		}

		rows = append(rows, processRow{
			cells: []string{fmt.Sprintf("%d", p.PID), p.Name, dashIfEmpty(holds), dashIfEmpty(wants), label},
			state: state,
		})
	}
	return rows
}

// buildResourceRows derives one table row per resource with held and free
// unit counts.
func buildResourceRows(s *snapshot.Snapshot) [][]string {
	held := make(map[string]int, len(s.Resources))
	for key, n := range s.Allocation {
		held[key.RID] += n
	}

	rows := make([][]string, 0, len(s.Resources))
	for _, rid := range s.ResourceIDs() {
		total := s.Resources[rid].Total
		rows = append(rows, []string{
			rid,
			fmt.Sprintf("%d", total),
			fmt.Sprintf("%d", held[rid]),
			fmt.Sprintf("%d", total-held[rid]),
		})
	}
	return rows
}

// fmtCounts formats one process's entries of an allocation or request table
// as "R1×1, R2×2". Zero counts are skipped like everywhere else.
func fmtCounts(keys []snapshot.Key, counts map[snapshot.Key]int, pid int) string {
	var parts []string
	for _, key := range keys {
		if key.PID != pid || counts[key] <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s×%d", key.RID, counts[key]))
	}
	return strings.Join(parts, ", ")
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
