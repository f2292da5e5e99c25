package render

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// painter applies styles only when colour output is on.
type painter bool

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p {
		return text
	}
	return s.Render(text)
}

func (p painter) title(text string) string { return p.paint(titleStyle, text) }
func (p painter) label(text string) string { return p.paint(labelStyle, text) }
func (p painter) dim(text string) string   { return p.paint(dimStyle, text) }
func (p painter) warn(text string) string  { return p.paint(warnStyle, text) }

// Error formats a user-facing error line, styled when color is set.
func Error(msg string, color bool) string {
	return painter(color).paint(errorStyle, "error: ") + msg
}
