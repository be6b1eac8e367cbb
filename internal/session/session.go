package session

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one immutable transcript entry. Slice order is chat
// chronology.
type Message struct {
	Role    Role
	Content string
}

// UploadSurface identifies which affordance started an upload. The two
// surfaces guard their in-flight uploads independently and present
// failures differently: the chat attach button appends transcript notices,
// the dedicated uploader raises blocking alerts.
type UploadSurface int

const (
	SurfaceAttach UploadSurface = iota
	SurfaceUploader
)

const (
	responsePlaceholder = "No response received."
	sendFailureNotice   = "Something went wrong while contacting the server."
	videoFailureNotice  = "Failed to load YouTube video."
	attachFailureNotice = "Image upload failed."
	uploadFailureAlert  = "File upload failed."
	uploadSuccessAlert  = "File uploaded and ingested."
)

// DuplicateNameError rejects an ingestion whose display name is already
// registered. It is raised before any network call.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("document %q has already been uploaded", e.Name)
}

var (
	// ErrEmptyInput marks a blank message or URL; callers ignore it
	// silently rather than surfacing it.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy marks an operation refused because a conflicting one is
	// still in flight.
	ErrBusy = errors.New("operation already in flight")
)

// Session coordinates the transcript, the active mode, and the in-flight
// pipeline guards for one chat session. All methods assume the
// run-to-completion event model of the hosting program: no two mutations
// interleave.
type Session struct {
	registry   *Registry
	transcript []Message
	mode       Mode
	sending    bool
	ingesting  bool
	uploading  map[UploadSurface]bool

	// OnDocumentChanged is invoked whenever a pipeline makes a new
	// document active. Optional.
	OnDocumentChanged func(id, name string)
}

func New(registry *Registry) *Session {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Session{
		registry:  registry,
		mode:      ModeRAG,
		uploading: map[UploadSurface]bool{},
	}
}

func (s *Session) Registry() *Registry {
	return s.registry
}

func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches the answer source. The transcript is preserved: prior
// exchanges stay visible across modes.
func (s *Session) SetMode(mode Mode) {
	s.mode = mode
}

// Transcript returns a copy of the exchanged messages in append order.
func (s *Session) Transcript() []Message {
	return append([]Message(nil), s.transcript...)
}

func (s *Session) TranscriptLen() int {
	return len(s.transcript)
}

func (s *Session) Sending() bool {
	return s.sending
}

func (s *Session) Ingesting() bool {
	return s.ingesting
}

// Uploading reports whether any surface has an upload in flight.
func (s *Session) Uploading() bool {
	return s.uploading[SurfaceAttach] || s.uploading[SurfaceUploader]
}

func (s *Session) UploadingOn(surface UploadSurface) bool {
	return s.uploading[surface]
}

// ActiveDocumentID returns the wire value for chat requests: the active
// document id, or empty when no document is bound.
func (s *Session) ActiveDocumentID() string {
	doc, ok := s.registry.Active()
	if !ok {
		return ""
	}
	return doc.ID
}

// AppendNotice adds a bot-authored notice to the transcript.
func (s *Session) AppendNotice(content string) {
	s.appendBot(content)
}

// BeginSend validates text and optimistically appends the user entry
// before any network round-trip. The returned string is the trimmed
// message to put on the wire. Sends are refused while a send, upload, or
// ingestion is pending.
func (s *Session) BeginSend(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	if s.sending || s.Uploading() || s.ingesting {
		return "", ErrBusy
	}
	s.transcript = append(s.transcript, Message{Role: RoleUser, Content: trimmed})
	s.sending = true
	return trimmed, nil
}

// FinishSend appends exactly one bot entry for the completed send. A
// missing response falls back to a fixed placeholder; any error collapses
// to a fixed generic notice, never the underlying cause.
func (s *Session) FinishSend(response string, err error) {
	s.sending = false
	switch {
	case err != nil:
		s.appendBot(sendFailureNotice)
	case strings.TrimSpace(response) == "":
		s.appendBot(responsePlaceholder)
	default:
		s.appendBot(response)
	}
}

// BeginUpload runs the client-side checks for an upload started on the
// given surface. When it returns an error no network call may be issued:
// DuplicateNameError for a name already in the registry, ErrBusy while a
// conflicting operation is pending.
func (s *Session) BeginUpload(surface UploadSurface, fileName string) error {
	if s.ingesting || s.uploading[surface] {
		return ErrBusy
	}
	if surface == SurfaceAttach && s.sending {
		return ErrBusy
	}
	if s.registry.ContainsName(fileName) {
		return &DuplicateNameError{Name: fileName}
	}
	s.uploading[surface] = true
	return nil
}

// UploadOutcome tells the caller how to present a finished upload. Notice
// is already on the transcript; Alert must be raised as a blocking modal.
type UploadOutcome struct {
	Doc    Document
	Notice string
	Alert  string
}

// FinishUpload applies the result of the ingestion request. On success the
// document is registered under its resolved name (falling back to the
// original file name) and becomes active. On failure nothing is
// registered and the failure is presented per surface.
func (s *Session) FinishUpload(surface UploadSurface, fileName string, docID, resolvedName string, err error) UploadOutcome {
	s.uploading[surface] = false
	if err != nil || docID == "" {
		if surface == SurfaceAttach {
			s.appendBot(attachFailureNotice)
			return UploadOutcome{Notice: attachFailureNotice}
		}
		return UploadOutcome{Alert: uploadFailureAlert}
	}
	name := resolvedName
	if name == "" {
		name = fileName
	}
	s.activateDocument(docID, name)
	doc := Document{ID: docID, Name: name}
	if surface == SurfaceAttach {
		notice := fmt.Sprintf("Image %q uploaded. Ask a question about this image or document.", fileName)
		s.appendBot(notice)
		return UploadOutcome{Doc: doc, Notice: notice}
	}
	return UploadOutcome{Doc: doc, Alert: uploadSuccessAlert}
}

// BeginVideoIngest validates the URL and takes the ingestion guard. While
// an ingestion is pending, sends and uploads are blocked; the reverse does
// not hold, which mirrors the observed behavior of the original client
// (see DESIGN.md).
func (s *Session) BeginVideoIngest(url string) (string, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	if s.ingesting {
		return "", ErrBusy
	}
	if s.registry.ContainsName(trimmed) {
		return "", &DuplicateNameError{Name: trimmed}
	}
	s.ingesting = true
	return trimmed, nil
}

// VideoIngestion mirrors the /youtube_ingest payload. Empty fields were
// absent from the response.
type VideoIngestion struct {
	DocID   string
	Title   string
	Summary string
	Error   string
}

// FinishVideoIngest triages the three ingestion outcomes: an error payload
// becomes a transcript notice and registers nothing; a document id
// registers and activates the video (titled, or named by its URL); a
// summary additionally appends a bot message. Registration and summary are
// independent once the payload is known to be error-free.
func (s *Session) FinishVideoIngest(url string, res VideoIngestion, err error) {
	s.ingesting = false
	if err != nil {
		s.appendBot(videoFailureNotice)
		return
	}
	if res.Error != "" {
		s.appendBot(fmt.Sprintf("YouTube error: %s", res.Error))
		return
	}
	if res.DocID != "" {
		name := res.Title
		if name == "" {
			name = url
		}
		s.activateDocument(res.DocID, name)
	}
	if res.Summary != "" {
		title := ""
		if res.Title != "" {
			title = ": " + res.Title
		}
		s.appendBot(fmt.Sprintf("Loaded YouTube video%s.\n\nSummary:\n%s", title, res.Summary))
	}
}

// DeleteDocument removes id after user confirmation and reports whether
// local state changed. Remote deletion is the caller's job and is
// best-effort: its failure must not undo the local removal.
func (s *Session) DeleteDocument(id string, confirm ConfirmFunc) (Document, bool) {
	return s.registry.Delete(id, confirm)
}

func (s *Session) activateDocument(id, name string) {
	s.registry.Register(id, name)
	s.registry.SetActive(id)
	if s.OnDocumentChanged != nil {
		s.OnDocumentChanged(id, name)
	}
}

func (s *Session) appendBot(content string) {
	s.transcript = append(s.transcript, Message{Role: RoleBot, Content: content})
}
