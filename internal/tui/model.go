package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"insight/internal/backend"
	"insight/internal/preview"
	"insight/internal/session"
	"insight/internal/theme"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Backend  backend.Client
	Themes   *theme.Store
	Theme    theme.Preference
	Previews *preview.Store
	Logger   *zap.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Previews == nil {
		config.Previews = preview.NewStore(0)
	}
	if !config.Theme.Valid() {
		config.Theme = theme.Detect()
	}

	composer := textinput.New()
	composer.Placeholder = session.ModeRAG.Placeholder()
	composer.Focus()
	composer.CharLimit = 400
	composer.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 16)
	vp.MouseWheelEnabled = true

	m := &model{
		config:          config,
		sess:            session.New(nil),
		stage:           stageChat,
		composer:        composer,
		composerMode:    composerModeMessage,
		spinner:         spin,
		viewport:        vp,
		layout:          newPageLayout(),
		styles:          newStyles(config.Theme == theme.Dark),
		jobs:            newJobBus(config.Logger),
		runningJobs:     map[string]jobSnapshot{},
		transcriptDirty: true,
		infoMessage:     emptyTranscriptHint,
	}
	// Both ingestion pipelines announce a newly active document through
	// this hook; the view reacts here rather than in each result handler.
	m.sess.OnDocumentChanged = func(id, name string) {
		m.infoMessage = fmt.Sprintf("Answering using: %s", name)
		m.markTranscriptDirty()
	}
	return m
}

type model struct {
	config Config
	sess   *session.Session
	stage  stage

	composer     textinput.Model
	composerMode composerMode
	spinner      spinner.Model
	viewport     viewport.Model
	layout       pageLayout
	styles       styles

	jobs        *jobBus
	runningJobs map[string]jobSnapshot

	docFilter       string
	previewVisible  bool
	helpVisible     bool
	transcriptDirty bool

	// Confirm-delete modal state.
	pendingDeleteID string
	confirmQuestion string

	// Alert modal raised by the uploader surface.
	alertMessage string

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		m.composer.Width = m.layout.viewportWidth - 4
		m.markTranscriptDirty()
		return m, nil
	case tea.MouseMsg:
		if m.stage == stageChat {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case jobSignalMsg:
		m.runningJobs[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.runningJobs, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case chatResultMsg:
		m.sess.FinishSend(msg.res.Response, msg.err)
		m.markTranscriptDirty()
		return m, nil
	case uploadResultMsg:
		return m.handleUploadResult(msg)
	case videoIngestResultMsg:
		m.sess.FinishVideoIngest(msg.url, session.VideoIngestion{
			DocID:   msg.res.DocID,
			Title:   msg.res.Title,
			Summary: msg.res.Summary,
			Error:   msg.res.Error,
		}, msg.err)
		m.markTranscriptDirty()
		return m, nil
	case deleteResultMsg:
		// Local state already moved on; nothing to present either way.
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.stage {
	case stageConfirmDelete:
		return m.handleConfirmKey(msg)
	case stageAlert:
		m.alertMessage = ""
		m.stage = stageChat
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m.cancelComposer()
	case tea.KeyEnter:
		return m.submitComposer()
	case tea.KeyTab:
		m.setMode(m.sess.Mode().Next())
		return m, nil
	case tea.KeyCtrlY:
		return m.enterComposerMode(composerModeVideoURL)
	case tea.KeyCtrlA:
		return m.enterComposerMode(composerModeAttach)
	case tea.KeyCtrlU:
		return m.enterComposerMode(composerModeUpload)
	case tea.KeyCtrlF:
		return m.enterComposerMode(composerModeFilter)
	case tea.KeyCtrlN:
		m.cycleActiveDocument(1)
		return m, nil
	case tea.KeyCtrlB:
		m.cycleActiveDocument(-1)
		return m, nil
	case tea.KeyCtrlD:
		return m.promptDeleteActive()
	case tea.KeyCtrlP:
		m.previewVisible = !m.previewVisible
		return m, nil
	case tea.KeyCtrlT:
		m.toggleTheme()
		return m, nil
	case tea.KeyCtrlG:
		m.helpVisible = !m.helpVisible
		return m, nil
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	if m.composerMode == composerModeFilter {
		m.docFilter = m.composer.Value()
	}
	return m, cmd
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		id := m.pendingDeleteID
		m.leaveConfirm()
		if _, ok := m.sess.DeleteDocument(id, acceptDeletion); !ok {
			return m, nil
		}
		m.markTranscriptDirty()
		// Remote cleanup is best-effort; failures are only logged.
		return m, m.jobs.Start(jobKindDelete, deleteDocumentJob(m.config.Backend, id))
	case "n", "esc":
		m.leaveConfirm()
		return m, nil
	}
	return m, nil
}

func acceptDeletion(string) bool { return true }

func (m *model) leaveConfirm() {
	m.pendingDeleteID = ""
	m.confirmQuestion = ""
	m.stage = stageChat
}

// promptDeleteActive opens the confirm modal for the active document. A
// declined registry call is a no-op, so it doubles as the way to obtain
// the exact confirmation prompt.
func (m *model) promptDeleteActive() (tea.Model, tea.Cmd) {
	doc, ok := m.sess.Registry().Active()
	if !ok {
		m.infoMessage = "No document selected."
		return m, nil
	}
	question := ""
	m.sess.DeleteDocument(doc.ID, func(q string) bool {
		question = q
		return false
	})
	m.pendingDeleteID = doc.ID
	m.confirmQuestion = question
	m.stage = stageConfirmDelete
	return m, nil
}

func (m *model) enterComposerMode(mode composerMode) (tea.Model, tea.Cmd) {
	if m.composerMode == mode {
		return m.cancelComposer()
	}
	m.composerMode = mode
	m.composer.SetValue("")
	if mode == composerModeFilter {
		m.composer.SetValue(m.docFilter)
	}
	m.composer.Placeholder = m.composerPlaceholder()
	m.composer.Focus()
	m.errorMessage = ""
	return m, textinput.Blink
}

func (m *model) cancelComposer() (tea.Model, tea.Cmd) {
	if m.composerMode == composerModeFilter {
		m.docFilter = ""
	}
	m.composerMode = composerModeMessage
	m.composer.SetValue("")
	m.composer.Placeholder = m.composerPlaceholder()
	m.composer.Focus()
	m.errorMessage = ""
	return m, nil
}

func (m *model) composerPlaceholder() string {
	switch m.composerMode {
	case composerModeVideoURL:
		return composerVideoPlaceholder
	case composerModeAttach:
		return composerAttachPlaceholder
	case composerModeUpload:
		return composerUploadPlaceholder
	case composerModeFilter:
		return composerFilterPlaceholder
	default:
		return m.sess.Mode().Placeholder()
	}
}

func (m *model) submitComposer() (tea.Model, tea.Cmd) {
	value := m.composer.Value()
	switch m.composerMode {
	case composerModeMessage:
		return m.submitMessage(value)
	case composerModeVideoURL:
		return m.submitVideoURL(value)
	case composerModeAttach:
		return m.submitUpload(session.SurfaceAttach, value)
	case composerModeUpload:
		return m.submitUpload(session.SurfaceUploader, value)
	case composerModeFilter:
		m.docFilter = strings.TrimSpace(value)
		m.composerMode = composerModeMessage
		m.composer.SetValue("")
		m.composer.Placeholder = m.composerPlaceholder()
		return m, nil
	}
	return m, nil
}

func (m *model) submitMessage(value string) (tea.Model, tea.Cmd) {
	text, err := m.sess.BeginSend(value)
	if err != nil {
		if errors.Is(err, session.ErrBusy) {
			m.infoMessage = "Still working on the previous request."
		}
		return m, nil
	}
	m.composer.SetValue("")
	m.errorMessage = ""
	m.markTranscriptDirty()
	job := chatJob(m.config.Backend, text, m.sess.ActiveDocumentID(), string(m.sess.Mode()))
	return m, tea.Batch(m.jobs.Start(jobKindChat, job), m.spinner.Tick)
}

func (m *model) submitVideoURL(value string) (tea.Model, tea.Cmd) {
	url, err := m.sess.BeginVideoIngest(value)
	if err != nil {
		var dup *session.DuplicateNameError
		switch {
		case errors.As(err, &dup):
			m.infoMessage = duplicateUploadHint
		case errors.Is(err, session.ErrBusy):
			m.infoMessage = "A video is already being indexed."
		}
		return m, nil
	}
	m.composerMode = composerModeMessage
	m.composer.SetValue("")
	m.composer.Placeholder = m.composerPlaceholder()
	m.errorMessage = ""
	return m, tea.Batch(
		m.jobs.Start(jobKindIngest, videoIngestJob(m.config.Backend, url)),
		m.spinner.Tick,
	)
}

func (m *model) submitUpload(surface session.UploadSurface, value string) (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(value)
	if path == "" {
		return m, nil
	}
	fileName := filepath.Base(path)
	if err := m.sess.BeginUpload(surface, fileName); err != nil {
		var dup *session.DuplicateNameError
		switch {
		case errors.As(err, &dup):
			m.infoMessage = duplicateUploadHint
		case errors.Is(err, session.ErrBusy):
			m.infoMessage = "An upload is already in progress."
		}
		return m, nil
	}
	m.composerMode = composerModeMessage
	m.composer.SetValue("")
	m.composer.Placeholder = m.composerPlaceholder()
	m.errorMessage = ""
	return m, tea.Batch(
		m.jobs.Start(jobKindUpload, uploadJob(m.config.Backend, surface, path)),
		m.spinner.Tick,
	)
}

func (m *model) handleUploadResult(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	outcome := m.sess.FinishUpload(msg.surface, msg.fileName, msg.res.DocID, msg.res.FileName, msg.err)
	m.markTranscriptDirty()
	if outcome.Alert != "" {
		m.alertMessage = outcome.Alert
		m.stage = stageAlert
	}
	if msg.err == nil && outcome.Doc.ID != "" {
		if _, err := m.config.Previews.Add(outcome.Doc.Name, msg.path); err != nil {
			m.config.Logger.Warn("preview excerpt failed",
				zap.String("file", msg.path),
				zap.Error(err),
			)
		}
	}
	return m, nil
}

func (m *model) setMode(mode session.Mode) {
	m.sess.SetMode(mode)
	if m.composerMode == composerModeMessage {
		m.composer.Placeholder = m.composerPlaceholder()
	}
	m.infoMessage = fmt.Sprintf("Mode: %s", mode.Label())
}

func (m *model) cycleActiveDocument(step int) {
	docs := m.sess.Registry().All()
	if len(docs) == 0 {
		m.infoMessage = "No documents uploaded yet."
		return
	}
	current := -1
	if active, ok := m.sess.Registry().Active(); ok {
		for i, doc := range docs {
			if doc.ID == active.ID {
				current = i
				break
			}
		}
	}
	next := (current + step + len(docs)) % len(docs)
	m.sess.Registry().SetActive(docs[next].ID)
	m.infoMessage = fmt.Sprintf("Answering using: %s", docs[next].Name)
}

func (m *model) toggleTheme() {
	m.config.Theme = theme.Toggle(m.config.Theme)
	m.styles = newStyles(m.config.Theme == theme.Dark)
	if m.config.Themes != nil {
		if err := m.config.Themes.Set(m.config.Theme); err != nil {
			m.config.Logger.Warn("theme persist failed", zap.Error(err))
		}
	}
	m.markTranscriptDirty()
}

func (m *model) busy() bool {
	return len(m.runningJobs) > 0 || m.sess.Sending() || m.sess.Uploading() || m.sess.Ingesting()
}

func (m *model) markTranscriptDirty() {
	m.transcriptDirty = true
}
