package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Bar is a horizontal meter for a value in [0, 1].
type Bar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// View renders the bar. Characters carry the fill so it survives output
// without color.
func (b Bar) View() string {
	var result string

	if b.Label != "" {
		result += lipgloss.NewStyle().Foreground(Text).Render(b.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if b.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(b.Width-labelWidth-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*b.Percent+0.5), 0), barWidth)
	empty := barWidth - filled

	result += lipgloss.NewStyle().Foreground(Secondary).Render(strings.Repeat("█", filled))
	result += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("░", empty))

	if b.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(TextDim).
			Render(fmt.Sprintf("  %d%%", int(b.Percent*100+0.5)))
	}

	return result
}
