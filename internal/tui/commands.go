package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"insight/internal/backend"
	"insight/internal/session"
)

type chatResultMsg struct {
	res backend.ChatResult
	err error
}

type uploadResultMsg struct {
	surface  session.UploadSurface
	fileName string
	path     string
	res      backend.UploadResult
	err      error
}

type videoIngestResultMsg struct {
	url string
	res backend.YoutubeResult
	err error
}

type deleteResultMsg struct {
	docID string
	err   error
}

func chatJob(client backend.Client, message, docID, mode string) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
		defer cancel()
		res, err := client.Chat(ctx, message, docID, mode)
		return chatResultMsg{res: res, err: err}, err
	}
}

func uploadJob(client backend.Client, surface session.UploadSurface, path string) jobRunner {
	fileName := filepath.Base(path)
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 3*time.Minute)
		defer cancel()
		file, err := os.Open(path)
		if err != nil {
			err = fmt.Errorf("open %s: %w", path, err)
			return uploadResultMsg{surface: surface, fileName: fileName, path: path, err: err}, err
		}
		defer file.Close()
		res, err := client.Upload(ctx, fileName, file)
		return uploadResultMsg{surface: surface, fileName: fileName, path: path, res: res, err: err}, err
	}
}

func videoIngestJob(client backend.Client, url string) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 3*time.Minute)
		defer cancel()
		res, err := client.IngestYoutube(ctx, url)
		return videoIngestResultMsg{url: url, res: res, err: err}, err
	}
}

// deleteDocumentJob tells the backend to drop the document. The local
// registry was already updated; a failure here is logged by the job bus
// and otherwise ignored.
func deleteDocumentJob(client backend.Client, docID string) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 30*time.Second)
		defer cancel()
		err := client.DeleteDocument(ctx, docID)
		return deleteResultMsg{docID: docID, err: err}, err
	}
}

func trimmedName(value string) string {
	value = strings.TrimSpace(value)
	if len([]rune(value)) <= 32 {
		return value
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:29])) + "..."
}
