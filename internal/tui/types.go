package tui

type stage int

const (
	stageChat stage = iota
	stageConfirmDelete
	stageAlert
)

const appTitle = "Insight AI"

const heroTagline = "Your AI-powered knowledge partner."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	docPaneLimit              = 8
)

// composerMode selects what the single composer line submits: a chat
// message, a YouTube URL, a local file path for one of the two upload
// surfaces, or a document filter query.
type composerMode int

const (
	composerModeMessage composerMode = iota
	composerModeVideoURL
	composerModeAttach
	composerModeUpload
	composerModeFilter
)

const (
	composerVideoPlaceholder  = "Paste YouTube URL to index the video..."
	composerAttachPlaceholder = "Path of the image or document to attach..."
	composerUploadPlaceholder = "Path of the file to upload..."
	composerFilterPlaceholder = "Filter documents by name..."
)

const (
	emptyTranscriptHint = "Ask a question about your uploaded document to get started."
	duplicateUploadHint = "This document has already been uploaded."
)
