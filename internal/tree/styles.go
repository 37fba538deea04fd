package tree

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

var flavor = catppuccin.Mocha

var (
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

type styles struct {
	root      lipgloss.Style
	section   lipgloss.Style
	active    lipgloss.Style
	item      lipgloss.Style
	on        lipgloss.Style
	off       lipgloss.Style
	value     lipgloss.Style
	enumerate lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		root:      lipgloss.NewStyle().Bold(true).Foreground(colorMauve),
		section:   lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
		active:    lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		item:      lipgloss.NewStyle().Foreground(colorText),
		on:        lipgloss.NewStyle().Foreground(colorGreen),
		off:       lipgloss.NewStyle().Foreground(colorOverlay0),
		value:     lipgloss.NewStyle().Foreground(colorText),
		enumerate: lipgloss.NewStyle().Foreground(colorOverlay0),
	}
}
