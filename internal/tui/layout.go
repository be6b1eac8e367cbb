package tui

import "strings"

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	composerHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 16,
		composerHeight: 1,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.composerHeight = 1
	// Header, mode pills, doc pane, banner, status bar, and padding.
	const chrome = 12
	usable := height - chrome - l.composerHeight
	if usable < 6 {
		usable = 6
	}
	l.viewportHeight = usable
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
