package tui

import "github.com/charmbracelet/lipgloss"

// styles carries every lipgloss style the views use. Rebuilt wholesale on
// a theme toggle so no view caches a stale style.
type styles struct {
	title         lipgloss.Style
	tagline       lipgloss.Style
	sectionHeader lipgloss.Style
	helper        lipgloss.Style
	errorText     lipgloss.Style
	userLabel     lipgloss.Style
	botLabel      lipgloss.Style
	statusBar     lipgloss.Style
	modePillOn    lipgloss.Style
	modePillOff   lipgloss.Style
	activeDoc     lipgloss.Style
	banner        lipgloss.Style
	key           lipgloss.Style
	keyDesc       lipgloss.Style
	legendBox     lipgloss.Style
	modalBox      lipgloss.Style
	previewBox    lipgloss.Style
}

func newStyles(dark bool) styles {
	if dark {
		return styles{
			title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true),
			tagline:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
			sectionHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
			helper:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			errorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			userLabel:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147")),
			botLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
			statusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1),
			modePillOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1),
			modePillOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
			activeDoc:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c")),
			banner:        lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true),
			key:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1),
			keyDesc:       lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")),
			legendBox:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2),
			modalBox:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2),
			previewBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1),
		}
	}
	return styles{
		title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("162")).Underline(true),
		tagline:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		sectionHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		helper:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		errorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		userLabel:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("55")),
		botLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("22")),
		statusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#fefefe")).Background(lipgloss.Color("#1d3557")).Padding(0, 1),
		modePillOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fefefe")).Background(lipgloss.Color("#b5651d")).Padding(0, 1),
		modePillOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Padding(0, 1),
		activeDoc:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
		key:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fefefe")).Background(lipgloss.Color("#1d3557")).Padding(0, 1),
		keyDesc:       lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		banner:        lipgloss.NewStyle().Foreground(lipgloss.Color("24")).Italic(true),
		legendBox:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("247")).Padding(1, 2),
		modalBox:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#1d3557")).Padding(1, 2),
		previewBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("247")).Padding(0, 1),
	}
}
