package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Artian theme for the CLI and shell.

const (
	IconWeapon = "🗡️"
	IconRoll   = "🎲"
	IconInfo   = "ℹ️"
	IconWarn   = "⚠️"
	IconError  = "🧨"
	IconDone   = "✅"
	IconBox    = "📦"
	IconTrash  = "🗑️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cYellow  = lipgloss.Color("226")
	cWhite   = lipgloss.Color("252")
	cCyan    = lipgloss.Color("45")
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

	Panel        = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	NoticePanel  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cWarn).Padding(0, 1)
	SelectedCell = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	ArmedRow     = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	CurrentRow   = lipgloss.NewStyle().Foreground(cCyan)
)

// classStyles maps field style classes to colours.
var classStyles = map[string]lipgloss.Style{
	"level-I":      lipgloss.NewStyle().Foreground(cWhite),
	"level-II":     lipgloss.NewStyle().Foreground(cGood),
	"level-III":    lipgloss.NewStyle().Foreground(cPrimary),
	"level-EX":     lipgloss.NewStyle().Bold(true).Foreground(cGold),
	"gogma-red":    lipgloss.NewStyle().Foreground(cBad),
	"gogma-yellow": lipgloss.NewStyle().Foreground(cYellow),
	"gogma-green":  lipgloss.NewStyle().Foreground(cGood),
}

// ClassStyle returns the style for a field class. Unknown classes are
// rendered plain.
func ClassStyle(class string) lipgloss.Style {
	if s, ok := classStyles[class]; ok {
		return s
	}
	return lipgloss.NewStyle()
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
