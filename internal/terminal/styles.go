package terminal

import "github.com/charmbracelet/lipgloss"

// Styles used by the Presenter
type Styles struct {
	Header    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Hint      lipgloss.Style
	Separator lipgloss.Style
	Prompt    lipgloss.Style
	Error     lipgloss.Style

	// Notify maps a notification color name to a style
	Notify map[string]lipgloss.Style
}

// NewStyles returns the colored styles
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2D3436")).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Notify: map[string]lipgloss.Style{
			"gold":       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
			"lightgreen": lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
			"red":        lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
			"yellow":     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		},
	}
}

// NewPlainStyles returns styles that render text unchanged
func NewPlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header:    plain,
		CardRed:   plain,
		CardBlack: plain,
		Hint:      plain,
		Separator: plain,
		Prompt:    plain,
		Error:     plain,
		Notify:    map[string]lipgloss.Style{},
	}
}

func (s *Styles) notify(color string) lipgloss.Style {
	if style, ok := s.Notify[color]; ok {
		return style
	}

	return lipgloss.NewStyle()
}
