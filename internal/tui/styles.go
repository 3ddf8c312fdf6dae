package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"petdex/pkg/domain"
)

// Shimmer animation for the PETDEX logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "P E T D E X" as a flowing wave of warm light.
// Deep ember (#3a2410) -> bright amber (#fbbf24). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "PETDEX"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// Flowing phase — one smooth wave advancing through the text
		phase := t*0.1 - x*3.0

		// Gentle speed modulation
		phase += math.Sin(t*0.023) * 2.0

		// Primary brightness wave
		b := math.Sin(phase)*0.5 + 0.5

		// Soft shaping
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Continuous RGB interpolation: deep ember -> bright amber
		// Deep:   (58, 36, 16)   #3a2410
		// Bright: (251, 191, 36) #fbbf24
		r := clampByte(58 + b*(251-58))
		g := clampByte(36 + b*(191-36))
		bl := clampByte(16 + b*(36-16))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		// Letter spacing — two spaces between each letter
		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — petdex neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	// Level bars
	barGoodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22c55e"))

	barWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#eab308"))

	barBadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))
)

// moodStyles color the known moods; unrecognized backend moods render dim.
var moodStyles = map[string]lipgloss.Style{
	domain.MoodHappy:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
	domain.MoodNeutral: lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")),
	domain.MoodSad:     lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
	domain.MoodAngry:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	domain.MoodExcited: lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
}

// MoodStyle returns the style for a mood, falling back to dim for values the
// client does not recognize.
func MoodStyle(mood string) lipgloss.Style {
	if s, ok := moodStyles[mood]; ok {
		return s
	}
	return dimStyle
}

// helpEntry renders a "key label" pair for the bottom help bar.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// barWidth is the number of cells in a stat level bar.
const barWidth = 10

// renderLevelBar draws a 0-100 level as a filled bar with a percent suffix.
// lowIsGood flips the color thresholds: hunger is healthy when low, energy
// when high.
func renderLevelBar(value int, lowIsGood bool) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	filled := value * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	style := barGoodStyle
	if lowIsGood {
		switch {
		case value >= 80:
			style = barBadStyle
		case value >= 50:
			style = barWarnStyle
		}
	} else {
		switch {
		case value <= 20:
			style = barBadStyle
		case value <= 50:
			style = barWarnStyle
		}
	}

	return style.Render(bar) + " " + metaStyle.Render(fmt.Sprintf("%3d%%", value))
}
