package scoreboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	player    lipgloss.Style
	leader    lipgloss.Style
	marker    lipgloss.Style
	positive  lipgloss.Style
	negative  lipgloss.Style
	neutral   lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	tableHead lipgloss.Style
	tableCell lipgloss.Style
	money     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		player:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		leader:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		positive: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		negative: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		neutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		tableHead: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")),
		tableCell: lipgloss.NewStyle().Padding(0, 1),
		money:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
	}
}

func (s styles) score(value int) lipgloss.Style {
	switch {
	case value > 0:
		return s.positive
	case value < 0:
		return s.negative
	default:
		return s.neutral
	}
}
