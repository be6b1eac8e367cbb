package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	envBaseURL     = "INSIGHT_API_URL"
	defaultBaseURL = "http://localhost:8000"
)

// Uploads carry whole files and youtube ingestion waits on transcript
// processing, so the client-side timeout is generous; callers cancel
// earlier through their context.
const defaultHTTPTimeout = 3 * time.Minute

// Config describes how to reach the Insight backend.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client exposes the four remote operations the coordinator drives. All
// retrieval, ranking, and generation logic lives behind these calls.
type Client interface {
	Chat(ctx context.Context, message, docID, mode string) (ChatResult, error)
	Upload(ctx context.Context, fileName string, content io.Reader) (UploadResult, error)
	IngestYoutube(ctx context.Context, videoURL string) (YoutubeResult, error)
	DeleteDocument(ctx context.Context, docID string) error
}

// ChatResult carries the /chat payload. Response is empty when the backend
// omitted the field; the session substitutes its placeholder.
type ChatResult struct {
	Response string `json:"response"`
}

// UploadResult carries the /upload payload. FileName is optional; empty
// means the caller keeps the original file name.
type UploadResult struct {
	DocID    string `json:"doc_id"`
	FileName string `json:"file_name"`
}

// YoutubeResult carries the /youtube_ingest payload. Every field is
// optional; empty means absent. Error is backend-reported data, not a
// transport failure.
type YoutubeResult struct {
	DocID   string `json:"doc_id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

// New builds the HTTP client for the backend. The base URL falls back to
// $INSIGHT_API_URL, then to localhost.
func New(cfg Config) (Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		if env := os.Getenv(envBaseURL); env != "" {
			base = env
		} else {
			base = defaultBaseURL
		}
	}
	base = strings.TrimRight(base, "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", base)
	}
	return &apiClient{
		base:   base,
		client: pickHTTPClient(cfg.HTTPClient),
	}, nil
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
