package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"insight/internal/backend"
	"insight/internal/session"
	"insight/internal/theme"
)

type fakeBackend struct {
	chatResponse string
	chatErr      error
	uploadRes    backend.UploadResult
	uploadErr    error
	youtubeRes   backend.YoutubeResult
	youtubeErr   error
	deleted      []string
}

func (f *fakeBackend) Chat(_ context.Context, _, _, _ string) (backend.ChatResult, error) {
	return backend.ChatResult{Response: f.chatResponse}, f.chatErr
}

func (f *fakeBackend) Upload(_ context.Context, _ string, _ io.Reader) (backend.UploadResult, error) {
	return f.uploadRes, f.uploadErr
}

func (f *fakeBackend) IngestYoutube(_ context.Context, _ string) (backend.YoutubeResult, error) {
	return f.youtubeRes, f.youtubeErr
}

func (f *fakeBackend) DeleteDocument(_ context.Context, docID string) error {
	f.deleted = append(f.deleted, docID)
	return nil
}

func newTestModel(t *testing.T) (*model, *fakeBackend) {
	t.Helper()
	fake := &fakeBackend{}
	m := New(Config{Backend: fake}).(*model)
	return m, fake
}

func TestSubmitMessageAppendsUserEntryAndStartsJob(t *testing.T) {
	m, _ := newTestModel(t)
	m.composer.SetValue("what is in the report?")

	_, cmd := m.submitComposer()
	if cmd == nil {
		t.Fatal("submit should start a chat job")
	}
	if !m.sess.Sending() {
		t.Fatal("session should be marked sending")
	}
	transcript := m.sess.Transcript()
	if len(transcript) != 1 || transcript[0].Role != session.RoleUser {
		t.Fatalf("expected optimistic user entry, got %#v", transcript)
	}
	if m.composer.Value() != "" {
		t.Fatalf("composer should clear after submit, got %q", m.composer.Value())
	}
}

func TestSubmitBlankMessageIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m.composer.SetValue("   ")

	_, cmd := m.submitComposer()
	if cmd != nil {
		t.Fatal("blank input must not start a job")
	}
	if m.sess.TranscriptLen() != 0 {
		t.Fatal("blank input must not touch the transcript")
	}
}

func TestChatResultAppendsBotEntry(t *testing.T) {
	m, _ := newTestModel(t)
	m.composer.SetValue("hello")
	m.submitComposer()

	m.Update(chatResultMsg{res: backend.ChatResult{Response: "hi there"}})

	transcript := m.sess.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(transcript))
	}
	if transcript[1].Content != "hi there" {
		t.Fatalf("bot entry mismatch: %q", transcript[1].Content)
	}
	if m.sess.Sending() {
		t.Fatal("sending flag should clear after the result")
	}
}

func TestDuplicateUploadShowsHintWithoutJob(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Registry().Register("doc-1", "report.pdf")
	m.enterComposerMode(composerModeUpload)
	m.composer.SetValue(filepath.Join("downloads", "report.pdf"))

	_, cmd := m.submitComposer()
	if cmd != nil {
		t.Fatal("duplicate name must be rejected before any job starts")
	}
	if m.infoMessage != duplicateUploadHint {
		t.Fatalf("expected duplicate hint, got %q", m.infoMessage)
	}
	if m.sess.Uploading() {
		t.Fatal("upload guard should stay clear")
	}
}

func TestUploaderFailureRaisesAlert(t *testing.T) {
	m, _ := newTestModel(t)
	if err := m.sess.BeginUpload(session.SurfaceUploader, "report.pdf"); err != nil {
		t.Fatalf("begin upload: %v", err)
	}

	m.Update(uploadResultMsg{
		surface:  session.SurfaceUploader,
		fileName: "report.pdf",
		err:      errors.New("boom"),
	})

	if m.stage != stageAlert {
		t.Fatalf("uploader failures should raise an alert, stage=%v", m.stage)
	}
	if m.alertMessage != "File upload failed." {
		t.Fatalf("alert mismatch: %q", m.alertMessage)
	}
	if m.sess.TranscriptLen() != 0 {
		t.Fatal("uploader failures must not touch the transcript")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageChat {
		t.Fatal("any key should dismiss the alert")
	}
}

func TestAttachFailureAppendsNotice(t *testing.T) {
	m, _ := newTestModel(t)
	if err := m.sess.BeginUpload(session.SurfaceAttach, "photo.png"); err != nil {
		t.Fatalf("begin upload: %v", err)
	}

	m.Update(uploadResultMsg{
		surface:  session.SurfaceAttach,
		fileName: "photo.png",
		err:      errors.New("boom"),
	})

	if m.stage != stageChat {
		t.Fatal("attach failures stay inline, no alert")
	}
	transcript := m.sess.Transcript()
	if len(transcript) != 1 || transcript[0].Content != "Image upload failed." {
		t.Fatalf("expected inline failure notice, got %#v", transcript)
	}
}

func TestDocumentActivationFlowsThroughHook(t *testing.T) {
	m, _ := newTestModel(t)
	if err := m.sess.BeginUpload(session.SurfaceAttach, "report.pdf"); err != nil {
		t.Fatalf("begin upload: %v", err)
	}

	m.Update(uploadResultMsg{
		surface:  session.SurfaceAttach,
		fileName: "report.pdf",
		res:      backend.UploadResult{DocID: "doc-1"},
	})

	if m.infoMessage != "Answering using: report.pdf" {
		t.Fatalf("upload activation should announce the document, got %q", m.infoMessage)
	}

	if _, err := m.sess.BeginVideoIngest("https://youtu.be/abc123"); err != nil {
		t.Fatalf("begin ingest: %v", err)
	}
	m.Update(videoIngestResultMsg{
		url: "https://youtu.be/abc123",
		res: backend.YoutubeResult{DocID: "vid-1", Title: "Go Concurrency Patterns"},
	})

	if m.infoMessage != "Answering using: Go Concurrency Patterns" {
		t.Fatalf("video activation should announce the document, got %q", m.infoMessage)
	}
	if m.sess.ActiveDocumentID() != "vid-1" {
		t.Fatalf("video should be the active document, got %q", m.sess.ActiveDocumentID())
	}
}

func TestConfirmDeleteDeclinedKeepsDocument(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Registry().Register("doc-1", "report.pdf")
	m.sess.Registry().SetActive("doc-1")

	m.promptDeleteActive()
	if m.stage != stageConfirmDelete {
		t.Fatalf("expected confirm stage, got %v", m.stage)
	}
	if want := `Delete "report.pdf" from your documents?`; m.confirmQuestion != want {
		t.Fatalf("confirm question mismatch: %q", m.confirmQuestion)
	}

	_, cmd := m.handleConfirmKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd != nil {
		t.Fatal("declining must not start a delete job")
	}
	if m.sess.Registry().Len() != 1 {
		t.Fatal("declined delete must keep the document")
	}
	if m.stage != stageChat {
		t.Fatal("modal should close after declining")
	}
}

func TestConfirmDeleteAcceptedRemovesAndFiresJob(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Registry().Register("doc-1", "report.pdf")
	m.sess.Registry().SetActive("doc-1")
	m.promptDeleteActive()

	_, cmd := m.handleConfirmKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatal("accepting should start the best-effort remote delete")
	}
	if m.sess.Registry().Len() != 0 {
		t.Fatal("accepted delete must remove the document locally")
	}
	if m.sess.ActiveDocumentID() != "" {
		t.Fatal("deleting the active document must clear the binding")
	}
}

func TestDeleteWithoutActiveDocumentIsNoOp(t *testing.T) {
	m, _ := newTestModel(t)
	m.promptDeleteActive()
	if m.stage != stageChat {
		t.Fatal("no modal without an active document")
	}
}

func TestTabCyclesModeAndPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	if m.sess.Mode() != session.ModeRAG {
		t.Fatalf("default mode should be documents, got %v", m.sess.Mode())
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.sess.Mode() != session.ModeWebSearch {
		t.Fatalf("tab should advance the mode, got %v", m.sess.Mode())
	}
	if m.composer.Placeholder != session.ModeWebSearch.Placeholder() {
		t.Fatalf("placeholder not updated: %q", m.composer.Placeholder)
	}
}

func TestVideoComposerUsesVideoPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.composerMode != composerModeVideoURL {
		t.Fatalf("expected video composer, got %v", m.composerMode)
	}
	if m.composer.Placeholder != composerVideoPlaceholder {
		t.Fatalf("placeholder mismatch: %q", m.composer.Placeholder)
	}

	// Esc returns to the message composer.
	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.composerMode != composerModeMessage {
		t.Fatalf("esc should restore message mode, got %v", m.composerMode)
	}
}

func TestCycleActiveDocumentWraps(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Registry().Register("doc-1", "a.pdf")
	m.sess.Registry().Register("doc-2", "b.pdf")

	m.cycleActiveDocument(1)
	if m.sess.ActiveDocumentID() != "doc-1" {
		t.Fatalf("first cycle should land on the first doc, got %q", m.sess.ActiveDocumentID())
	}
	m.cycleActiveDocument(1)
	m.cycleActiveDocument(1)
	if m.sess.ActiveDocumentID() != "doc-1" {
		t.Fatalf("cycling should wrap, got %q", m.sess.ActiveDocumentID())
	}
	if !strings.Contains(m.infoMessage, "Answering using: a.pdf") {
		t.Fatalf("info should name the selected doc, got %q", m.infoMessage)
	}
}

func TestBannerOnlyInDocumentsMode(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Registry().Register("doc-1", "report.pdf")
	m.sess.Registry().SetActive("doc-1")

	if view := m.viewChat(); !strings.Contains(view, "Answering using: report.pdf") {
		t.Fatal("documents mode should show the grounding banner")
	}

	m.setMode(session.ModeWebSearch)
	if view := m.viewChat(); strings.Contains(view, "Answering using:") {
		t.Fatal("other modes must not show the grounding banner")
	}
}

func TestEmptyTranscriptShowsHint(t *testing.T) {
	m, _ := newTestModel(t)
	if view := m.viewChat(); !strings.Contains(view, emptyTranscriptHint) {
		t.Fatal("empty transcript should show the getting-started hint")
	}
}

func TestThemeTogglePersists(t *testing.T) {
	m, _ := newTestModel(t)
	store := theme.NewStore(filepath.Join(t.TempDir(), "theme.json"))
	m.config.Themes = store
	m.config.Theme = theme.Light

	m.toggleTheme()
	if m.config.Theme != theme.Dark {
		t.Fatalf("toggle should flip the preference, got %v", m.config.Theme)
	}
	if got := store.Load(theme.Light); got != theme.Dark {
		t.Fatalf("toggle should persist, loaded %v", got)
	}
}

func TestKeyLegendToggle(t *testing.T) {
	m, _ := newTestModel(t)
	if view := m.viewChat(); strings.Contains(view, "Next/prev doc") {
		t.Fatal("legend should be hidden by default")
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlG})
	if view := m.viewChat(); !strings.Contains(view, "Next/prev doc") {
		t.Fatal("legend should appear after Ctrl+G")
	}
}

func TestFilterNarrowsDocumentPane(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Registry().Register("doc-1", "quarterly-report.pdf")
	m.sess.Registry().Register("doc-2", "meeting-notes.txt")

	m.docFilter = "report"
	view := m.viewChat()
	if !strings.Contains(view, "quarterly-report.pdf") {
		t.Fatal("matching doc should stay visible")
	}
	if strings.Contains(view, "meeting-notes.txt") {
		t.Fatal("non-matching doc should be filtered out")
	}
}
