package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FocusDen theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconFocus   = "🎯"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconGold    = "🪙"
	IconFlame   = "🔥"
	IconWorld   = "🏡"
	IconDrop    = "🎁"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconTimer   = "⏳"
	IconCancel  = "🚫"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cEpic    = lipgloss.Color("135") // purple
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
	Epic  = lipgloss.NewStyle().Bold(true).Foreground(cEpic)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

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

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return Good.Render("completed")
	case "running":
		return Warn.Render("running")
	case "cancelled":
		return Muted.Render("cancelled")
	default:
		return Muted.Render(status)
	}
}

func RarityText(rarity string) string {
	switch strings.ToLower(strings.TrimSpace(rarity)) {
	case "epic":
		return Epic.Render("epic")
	case "rare":
		return H2.Render("rare")
	default:
		return Muted.Render("common")
	}
}

func RoomIcon(room string) string {
	switch strings.ToLower(strings.TrimSpace(room)) {
	case "study":
		return "📚"
	case "build":
		return "🔨"
	case "training":
		return "🏋️"
	case "plaza":
		return "⛲"
	default:
		return IconWorld
	}
}
