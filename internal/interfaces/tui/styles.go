package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/erp-admin/internal/infrastructure/notify"
)

type styles struct {
	title      lipgloss.Style
	sidebar    lipgloss.Style
	menuItem   lipgloss.Style
	menuActive lipgloss.Style
	card       lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	muted      lipgloss.Style
	notice     notify.Styles
}

func defaultStyles() styles {
	accent := lipgloss.Color("#2196F3")
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		sidebar:    lipgloss.NewStyle().Width(16).PaddingRight(2).BorderStyle(lipgloss.NormalBorder()).BorderRight(true),
		menuItem:   lipgloss.NewStyle().PaddingLeft(1),
		menuActive: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).MarginRight(1),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		value:      lipgloss.NewStyle().Bold(true),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		notice:     notify.DefaultStyles(),
	}
}
