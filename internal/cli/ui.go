package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

// ANSI-256 colors shared by command output and the explorer.
var (
	colorAccent = lipgloss.Color("36")  // teal: headings, numbers, selection
	colorOK     = lipgloss.Color("35")  // green: success, focus node
	colorWarn   = lipgloss.Color("220") // amber: warnings, notices
	colorErr    = lipgloss.Color("167") // soft red
	colorDoc    = lipgloss.Color("75")  // light blue: DOC nodes, commands
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorDoc)
)

const (
	iconArrow   = "→"
	iconWarning = "!"
)

// statusMark is the leading glyph of a status line.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorErr)}
	markWarning = statusMark{iconWarning, lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = statusMark{"›", styleMuted}
)

// =============================================================================
// Command Output
// =============================================================================

// stdout receives all human-readable command output. Tests replace it.
var stdout io.Writer = os.Stdout

func printStatus(m statusMark, msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus(markSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(markError, fmt.Sprintf(format, args...))
}

// printWarning colors the whole message, not only the mark.
func printWarning(format string, args ...any) {
	printStatus(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints one row of an aligned key/value listing.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleMuted.Width(12).Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the node and edge counts of a result and whether it
// came from the cache. Zero counts are left out.
func printStats(nodes, edges int, cached bool) {
	var parts []string
	if nodes > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodes)))
	}
	if edges > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d edges", edges)))
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep prints a blank line and a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
