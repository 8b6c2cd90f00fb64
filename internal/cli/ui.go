package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

// The palette mirrors the verdict colors used by the TUI and the DOT
// renderer: green for safe, red for deadlocked, amber for unsafe-but-alive.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - titles, spinner
	colorGreen  = lipgloss.Color("35")  // Green - safe verdicts, cache hits
	colorYellow = lipgloss.Color("220") // Amber - unsafe warnings
	colorRed    = lipgloss.Color("167") // Soft red - deadlocks, errors
	colorBlue   = lipgloss.Color("75")  // Light blue - suggested commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - detail lines
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for table titles and section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values (scenario names, focus ids).
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values in key-value listings.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for unsafe-state messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// statusLine prints one icon-prefixed status line. All the verdict
// helpers below route through it so their layout stays in sync.
func statusLine(icon lipgloss.Style, glyph, msg string) {
	fmt.Println(icon.Render(glyph) + " " + msg)
}

// printSuccess reports a good outcome: no cycles, cache cleared.
func printSuccess(format string, args ...any) {
	statusLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

// printError reports a deadlock or a failed step.
func printError(format string, args ...any) {
	statusLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

// printWarning reports an unsafe state that has not deadlocked yet.
func printWarning(format string, args ...any) {
	statusLine(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo reports a neutral status line.
func printInfo(format string, args ...any) {
	statusLine(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line, e.g. one cycle or one victim.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Value Output
// =============================================================================

// printFile points at a file the command wrote.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value with a fixed-width label column.
func printKeyValue(key, value string) {
	label := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(label.Render(key) + " " + StyleValue.Render(value))
}

// printStats summarizes a built graph: node and link counts plus whether
// the artifact came from the cache.
func printStats(nodeCount, linkCount int, cached bool) {
	var parts []string
	if nodeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", nodeCount))
	}
	if linkCount > 0 {
		parts = append(parts, fmt.Sprintf("%d links", linkCount))
	}

	status, style := iconFresh, styleComputed
	if cached {
		status, style = iconCached, styleCached
	}
	parts = append(parts, style.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printNextStep suggests a follow-up command, e.g. rerunning detect with
// --recover after a deadlock verdict.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
