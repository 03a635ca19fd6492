package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pathviz/internal/render"
)

// styles are derived from the active theme.
type styles struct {
	panel       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	active      lipgloss.Style
	keyHint     lipgloss.Style
	statusIdle  lipgloss.Style
	statusBusy  lipgloss.Style
	statusDone  lipgloss.Style
	statusError lipgloss.Style
	graph       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:       lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		active:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		keyHint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		statusIdle:  lipgloss.NewStyle().Foreground(t.Text),
		statusBusy:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		statusDone:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		statusError: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		graph:       lipgloss.NewStyle().Foreground(t.Accent),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	start, err := render.ParseHex(string(startColor))
	if err != nil {
		return text
	}
	end, err := render.ParseHex(string(endColor))
	if err != nil {
		return text
	}

	var result strings.Builder
	runes := []rune(text)
	n := len(runes)

	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		mixed := start
		mixed.R = lerp(start.R, end.R, t)
		mixed.G = lerp(start.G, end.G, t)
		mixed.B = lerp(start.B, end.B, t)

		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(render.Hex(mixed)))
		result.WriteString(style.Render(string(c)))
	}

	return result.String()
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)))
}

// ProgressBar renders a progress bar coloured by completion.
func ProgressBar(percent float64, width int, t Theme) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	c := t.Warning
	if percent >= 1 {
		c = t.Success
	}
	return lipgloss.NewStyle().Foreground(c).Render(bar)
}
