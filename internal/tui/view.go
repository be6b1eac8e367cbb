package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"insight/internal/session"
)

func (m *model) View() string {
	switch m.stage {
	case stageConfirmDelete:
		return m.viewConfirmDelete()
	case stageAlert:
		return m.viewAlert()
	default:
		return m.viewChat()
	}
}

func (m *model) viewChat() string {
	m.refreshTranscriptIfDirty()
	parts := []string{
		m.headerView(),
		m.modePillsView(),
		m.documentPaneView(),
		m.bannerView(),
		m.viewport.View(),
	}
	if m.previewVisible {
		parts = append(parts, m.previewPanelView())
	}
	if m.errorMessage != "" {
		parts = append(parts, m.styles.errorText.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		message := m.infoMessage
		if m.busy() {
			message = fmt.Sprintf("%s %s", m.spinner.View(), message)
		}
		parts = append(parts, m.styles.helper.Render(message))
	} else if m.busy() {
		parts = append(parts, m.styles.helper.Render(m.spinner.View()+" Working..."))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	parts = append(parts, m.composerPanel(), m.statusBarView())
	return joinNonEmpty(parts)
}

func (m *model) viewConfirmDelete() string {
	body := joinNonEmpty([]string{
		m.styles.sectionHeader.Render("Confirm"),
		m.confirmQuestion,
		m.styles.helper.Render("y: delete • n/Esc: keep"),
	})
	return joinNonEmpty([]string{m.headerView(), m.styles.modalBox.Render(body)})
}

func (m *model) viewAlert() string {
	body := joinNonEmpty([]string{
		m.alertMessage,
		m.styles.helper.Render("Press any key to continue."),
	})
	return joinNonEmpty([]string{m.headerView(), m.styles.modalBox.Render(body)})
}

func (m *model) headerView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.title.Render(appTitle),
		m.styles.tagline.Render(heroTagline),
	)
}

func (m *model) modePillsView() string {
	pills := make([]string, 0, len(session.Modes))
	for _, mode := range session.Modes {
		if mode == m.sess.Mode() {
			pills = append(pills, m.styles.modePillOn.Render(mode.Label()))
			continue
		}
		pills = append(pills, m.styles.modePillOff.Render(mode.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}

func (m *model) documentPaneView() string {
	docs := m.sess.Registry().FilterByName(m.docFilter)
	header := fmt.Sprintf("Documents (%d)", m.sess.Registry().Len())
	if m.docFilter != "" {
		header = fmt.Sprintf("Documents (%d/%d, filter %q)", len(docs), m.sess.Registry().Len(), m.docFilter)
	}
	lines := []string{m.styles.sectionHeader.Render(header)}
	if len(docs) == 0 {
		if m.docFilter != "" {
			lines = append(lines, m.styles.helper.Render("  No documents match this filter."))
		} else {
			lines = append(lines, m.styles.helper.Render("  Nothing uploaded yet. Ctrl+U uploads a file, Ctrl+Y indexes a video."))
		}
		return strings.Join(lines, "\n")
	}
	activeID := m.sess.ActiveDocumentID()
	shown := docs
	if len(shown) > docPaneLimit {
		shown = shown[:docPaneLimit]
	}
	for _, doc := range shown {
		name := trimmedName(doc.Name)
		if doc.ID == activeID {
			lines = append(lines, m.styles.activeDoc.Render("  ▸ "+name))
			continue
		}
		lines = append(lines, "    "+name)
	}
	if hidden := len(docs) - len(shown); hidden > 0 {
		lines = append(lines, m.styles.helper.Render(fmt.Sprintf("    ... and %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

// bannerView names the document grounding the next answer. Only shown in
// document mode; other modes answer from their own sources.
func (m *model) bannerView() string {
	if !m.sess.Mode().ShowsDocumentBanner() {
		return ""
	}
	doc, ok := m.sess.Registry().Active()
	if !ok {
		return ""
	}
	return m.styles.banner.Render(fmt.Sprintf("Answering using: %s", doc.Name))
}

func (m *model) previewPanelView() string {
	doc, ok := m.sess.Registry().Active()
	if !ok {
		return m.styles.previewBox.Render(m.styles.helper.Render("No document selected."))
	}
	res, ok := m.config.Previews.Lookup(doc.Name)
	if !ok {
		return m.styles.previewBox.Render(m.styles.helper.Render(
			fmt.Sprintf("No local preview for %s.", doc.Name)))
	}
	header := m.styles.sectionHeader.Render(fmt.Sprintf("%s (%d bytes)", res.Name, res.Size))
	body := wordwrap.String(res.Excerpt, m.wrapWidth(6))
	return m.styles.previewBox.Render(header + "\n" + body)
}

func (m *model) composerPanel() string {
	return joinNonEmpty([]string{
		m.styles.sectionHeader.Render(m.composerTitle()),
		m.composer.View(),
	})
}

func (m *model) composerTitle() string {
	switch m.composerMode {
	case composerModeVideoURL:
		return "Index a YouTube video"
	case composerModeAttach:
		return "Attach to chat"
	case composerModeUpload:
		return "Upload a file"
	case composerModeFilter:
		return "Filter documents"
	default:
		return "Message"
	}
}

func (m *model) statusBarView() string {
	stats := []string{
		fmt.Sprintf("Mode %s", m.sess.Mode().Label()),
		fmt.Sprintf("Docs %d", m.sess.Registry().Len()),
	}
	switch {
	case m.sess.Ingesting():
		stats = append(stats, "Indexing video...")
	case m.sess.Uploading():
		stats = append(stats, "Uploading...")
	case m.sess.Sending():
		stats = append(stats, "Waiting for answer...")
	}
	for _, snap := range m.runningJobs {
		stats = append(stats, fmt.Sprintf("%s %s", snap.Kind, snap.Status))
	}
	stats = append(stats, "Ctrl+G help")
	return m.styles.statusBar.Render(strings.Join(stats, "  •  "))
}

func (m *model) refreshTranscriptIfDirty() {
	if !m.transcriptDirty {
		return
	}
	m.transcriptDirty = false
	m.viewport.SetContent(m.transcriptContent())
	m.viewport.GotoBottom()
}

func (m *model) transcriptContent() string {
	transcript := m.sess.Transcript()
	if len(transcript) == 0 {
		return m.styles.helper.Render(emptyTranscriptHint)
	}
	wrap := m.wrapWidth(4)
	var b strings.Builder
	for idx, entry := range transcript {
		label := m.styles.botLabel.Render("Bot")
		if entry.Role == session.RoleUser {
			label = m.styles.userLabel.Render("You")
		}
		b.WriteString(label)
		b.WriteRune('\n')
		b.WriteString(indentMultiline(wordwrap.String(entry.Content, wrap), "  "))
		if idx < len(transcript)-1 {
			b.WriteString("\n\n")
		} else {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Send"},
		{"Tab", "Switch mode"},
		{"Ctrl+Y", "Index video"},
		{"Ctrl+A", "Attach file"},
		{"Ctrl+U", "Upload file"},
		{"Ctrl+N/B", "Next/prev doc"},
		{"Ctrl+D", "Delete doc"},
		{"Ctrl+F", "Filter docs"},
		{"Ctrl+P", "Preview"},
		{"Ctrl+T", "Theme"},
		{"Esc", "Cancel"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{m.styles.sectionHeader.Render("Keys")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := m.styles.key.Render(hint.Key)
			desc := m.styles.keyDesc.Render(" " + hint.Description)
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.styles.legendBox.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
