package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Statline theme (CLI + TUI).

const (
	IconTask    = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconUndo    = "↩️"
	IconChart   = "📈"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconRules   = "⚖️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

// statLabels maps stat names to short display labels.
var statLabels = map[string]string{
	"stamina":        "💪 Stamina",
	"skills":         "🛠️ Skills",
	"intelligence":   "🧠 Intelligence",
	"power":          "⚡ Power",
	"timeManagement": "⏱️ Time Mgmt",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatLabel(stat string) string {
	if l, ok := statLabels[stat]; ok {
		return l
	}
	return stat
}

// StatBar renders value out of 100 as a colored bar. Values outside [0,100] are pinned.
func StatBar(value int, width int) string {
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * width / 100
	style := Good
	switch {
	case value >= 100:
		style = Gold
	case value < 30:
		style = Bad
	case value < 60:
		style = Warn
	}
	return style.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// Delta renders a signed change: green for gains, red for losses, muted for zero.
func Delta(n int) string {
	switch {
	case n > 0:
		return Good.Render(fmt.Sprintf("+%d", n))
	case n < 0:
		return Bad.Render(fmt.Sprintf("%d", n))
	default:
		return Muted.Render("0")
	}
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Good.Render("completed")
	case "in_progress":
		return H2.Render("in progress")
	case "pending":
		return Warn.Render("pending")
	case "skipped", "failed":
		return Bad.Render(s)
	case "partial":
		return Gold.Render("partial")
	default:
		return Muted.Render(status)
	}
}
