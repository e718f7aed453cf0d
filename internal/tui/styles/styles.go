// Package styles holds the lipgloss palette of the terminal UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Primary   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	Accent    = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFB74D"}
	Muted     = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
	Border    = lipgloss.AdaptiveColor{Light: "#C8E6C9", Dark: "#2E4632"}
	Highlight = lipgloss.AdaptiveColor{Light: "#E8F5E9", Dark: "#1B2E1D"}
)

// Styles groups the rendered styles used by every screen.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Header     lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	Selected   lipgloss.Style
	Cursor     lipgloss.Style
	Done       lipgloss.Style
	Muted      lipgloss.Style
	Status     lipgloss.Style
	App        lipgloss.Style
}

func card(border lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// Default returns the standard styles.
func Default() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Subtitle:   lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Card:       card(Border),
		ActiveCard: card(Primary),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Cursor:     lipgloss.NewStyle().Background(Highlight).Bold(true),
		Done:       lipgloss.NewStyle().Foreground(Muted).Strikethrough(true),
		Muted:      lipgloss.NewStyle().Foreground(Muted),
		Status:     lipgloss.NewStyle().Foreground(Accent).MarginTop(1),
		App:        lipgloss.NewStyle().Padding(1, 2),
	}
}
