package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// apiClient talks JSON over HTTP to the Insight backend.
type apiClient struct {
	base   string
	client *http.Client
}

type chatRequest struct {
	Message string `json:"message"`
	DocID   any    `json:"doc_id"`
	Mode    string `json:"mode"`
}

type youtubeRequest struct {
	URL string `json:"url"`
}

type deleteRequest struct {
	DocID string `json:"doc_id"`
}

func (c *apiClient) Chat(ctx context.Context, message, docID, mode string) (ChatResult, error) {
	// The wire contract wants an explicit null when no document is bound,
	// not an empty string.
	var docField any
	if docID != "" {
		docField = docID
	}
	var out ChatResult
	err := c.postJSON(ctx, "/chat", chatRequest{Message: message, DocID: docField, Mode: mode}, &out)
	return out, err
}

func (c *apiClient) Upload(ctx context.Context, fileName string, content io.Reader) (UploadResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, fmt.Errorf("read upload content: %w", err)
	}
	if err := form.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/upload", &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out UploadResult
	if err := c.do(req, &out); err != nil {
		return UploadResult{}, err
	}
	if out.DocID == "" {
		return UploadResult{}, fmt.Errorf("upload response missing doc_id")
	}
	return out, nil
}

func (c *apiClient) IngestYoutube(ctx context.Context, videoURL string) (YoutubeResult, error) {
	var out YoutubeResult
	err := c.postJSON(ctx, "/youtube_ingest", youtubeRequest{URL: videoURL}, &out)
	return out, err
}

func (c *apiClient) DeleteDocument(ctx context.Context, docID string) error {
	// The response body carries nothing the client acts on.
	return c.postJSON(ctx, "/delete_document", deleteRequest{DocID: docID}, nil)
}

// postJSON posts payload to path and decodes the response into out when out
// is non-nil. Non-2xx statuses become errors carrying the status and a
// trimmed body excerpt.
func (c *apiClient) postJSON(ctx context.Context, path string, payload, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *apiClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s returned %s: %s", req.URL.Path, resp.Status, excerpt(body))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
