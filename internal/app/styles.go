package app

import "github.com/charmbracelet/lipgloss"

// Lucy palette
var (
	colBg     = lipgloss.Color("#180f6e")
	colFg     = lipgloss.Color("#dfc0e9")
	colPurple = lipgloss.Color("#7a258d")
	colMuted  = lipgloss.Color("#8771a6")
	colAccent = lipgloss.Color("#fada16")
)

type Styles struct {
	AppTitle    lipgloss.Style
	Header      lipgloss.Style
	HeaderNow   lipgloss.Style
	HeaderBadge lipgloss.Style
	Body        lipgloss.Style
	ListRow     lipgloss.Style
	ListRowDim  lipgloss.Style
	Current     lipgloss.Style
	Cursor      lipgloss.Style
	Footer      lipgloss.Style
	Error       lipgloss.Style
}

func newStyles() Styles {
	base := lipgloss.NewStyle().Foreground(colFg)

	return Styles{
		AppTitle:    base.Bold(true),
		Header:      base.Background(colBg).Padding(0, 1),
		HeaderNow:   base.Faint(true),
		HeaderBadge: base.Foreground(colAccent).Bold(true),

		Body:       base.Padding(1, 2),
		ListRow:    base,
		ListRowDim: base.Foreground(colMuted),
		Current:    base.Bold(true).Background(colPurple),
		Cursor:     base.Foreground(colAccent),

		Footer: base.Foreground(colMuted).Padding(0, 1),
		Error:  base.Foreground(lipgloss.Color("#ff6b6b")),
	}
}
