package session

// Mode selects which answer source the backend uses for a chat request. The
// string values are the wire contract carried in the "mode" field.
type Mode string

const (
	ModeRAG         Mode = "rag"
	ModeWebSearch   Mode = "web_search"
	ModeUIGenerator Mode = "ui_generator"
	ModeYoutube     Mode = "youtube"
)

// Modes lists every mode in pill display order.
var Modes = []Mode{ModeRAG, ModeWebSearch, ModeUIGenerator, ModeYoutube}

// Next returns the mode following m in display order, wrapping around.
func (m Mode) Next() Mode {
	for i, candidate := range Modes {
		if candidate == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeRAG
}

// Label is the short name rendered on the mode pill.
func (m Mode) Label() string {
	switch m {
	case ModeWebSearch:
		return "Web search"
	case ModeUIGenerator:
		return "UI generator"
	case ModeYoutube:
		return "YouTube video"
	default:
		return "Documents"
	}
}

// Placeholder returns the composer placeholder shown while the mode is
// active.
func (m Mode) Placeholder() string {
	switch m {
	case ModeWebSearch:
		return "Search the web with AI..."
	case ModeUIGenerator:
		return "Describe the UI component you want (e.g. a login card)..."
	case ModeYoutube:
		return "Ask a question about this YouTube video..."
	default:
		return "Ask a question about your document..."
	}
}

// ShowsDocumentBanner reports whether the "Answering using" banner applies
// to the mode.
func (m Mode) ShowsDocumentBanner() bool {
	return m == ModeRAG
}

// ShowsVideoInput reports whether the YouTube URL affordance applies.
func (m Mode) ShowsVideoInput() bool {
	return m == ModeYoutube
}
