package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(44)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// statusStyle colors the source banner by how live the data is.
func (t Theme) statusStyle(src string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch src {
	case "training":
		return base.Foreground(t.Success)
	case "test":
		return base.Foreground(t.Accent)
	case "preview":
		return base.Foreground(t.Secondary)
	case "hold":
		return base.Foreground(t.Warning)
	default:
		return base.Foreground(t.Muted)
	}
}

func (t Theme) header(s string) string {
	return lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(s)
}

func (t Theme) label(s string) string {
	return lipgloss.NewStyle().Foreground(t.Muted).Width(12).Render(s)
}

func (t Theme) value(s string) string {
	return lipgloss.NewStyle().Foreground(t.Text).Render(s)
}

// ProgressBar renders a fixed-width bar for a 0..1 ratio.
func (t Theme) ProgressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := lipgloss.NewStyle().Foreground(t.Error)
	if ratio > 0.8 {
		style = style.Foreground(t.Success)
	} else if ratio > 0.4 {
		style = style.Foreground(t.Warning)
	}
	return style.Render(bar)
}
