package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	panel       lipgloss.Style
	canvas      lipgloss.Style
	header      lipgloss.Style
	playing     lipgloss.Style
	stopped     lipgloss.Style
	failed      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	graph       lipgloss.Style
	hint        lipgloss.Style
	progressOn  lipgloss.Style
	progressOff lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(44),
		canvas: lipgloss.NewStyle().Padding(1, 2),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		playing:     lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		stopped:     lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		failed:      lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:       lipgloss.NewStyle().Foreground(t.Text),
		graph:       lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		hint:        lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		progressOn:  lipgloss.NewStyle().Foreground(t.Primary),
		progressOff: lipgloss.NewStyle().Foreground(t.Border),
	}
}

// progressBar shows index out of total as a bar width cells wide.
func (s styles) progressBar(index, total, width int) string {
	filled := width
	if total > 0 {
		filled = index * width / total
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.progressOn.Render(strings.Repeat("█", filled)) + s.progressOff.Render(strings.Repeat("░", width-filled))
}

// Sparkline renders values with eight bar heights, sampled down to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		result.WriteRune(chars[idx])
	}
	return result.String()
}
