// Package preview builds local text excerpts for uploaded files so the
// viewer can show something without a backend round-trip.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const defaultExcerptChars = 1200

const binaryPlaceholder = "(binary file)"

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Resource is the locally held record for one uploaded file. Resources
// live for the whole session; nothing revokes them.
type Resource struct {
	Name    string
	Path    string
	Size    int64
	Excerpt string
	AddedAt time.Time
}

// Store maps document display names to their local preview resources.
type Store struct {
	excerptChars int
	resources    map[string]Resource
}

func NewStore(excerptChars int) *Store {
	if excerptChars <= 0 {
		excerptChars = defaultExcerptChars
	}
	return &Store{
		excerptChars: excerptChars,
		resources:    map[string]Resource{},
	}
}

// Add reads path and records an excerpt under name. PDF content is
// extracted as plain text; other files are previewed from their head when
// printable. A later Add under the same name replaces the earlier record.
func (s *Store) Add(name, path string) (Resource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Resource{}, fmt.Errorf("stat %s: %w", path, err)
	}
	excerpt, err := s.excerptFor(path)
	if err != nil {
		return Resource{}, err
	}
	res := Resource{
		Name:    name,
		Path:    path,
		Size:    info.Size(),
		Excerpt: excerpt,
		AddedAt: time.Now(),
	}
	s.resources[name] = res
	return res, nil
}

// Lookup returns the resource recorded under name.
func (s *Store) Lookup(name string) (Resource, bool) {
	res, ok := s.resources[name]
	return res, ok
}

func (s *Store) Len() int {
	return len(s.resources)
}

func (s *Store) excerptFor(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return s.pdfExcerpt(path)
	}
	return s.headExcerpt(path)
}

func (s *Store) pdfExcerpt(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	text := extraneousWhitespace.ReplaceAllString(builder.String(), " ")
	return s.clip(strings.TrimSpace(text)), nil
}

func (s *Store) headExcerpt(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, s.excerptChars*4)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	head = head[:n]
	if !looksPrintable(head) {
		return binaryPlaceholder, nil
	}
	return s.clip(strings.TrimSpace(string(head))), nil
}

func (s *Store) clip(text string) string {
	if utf8.RuneCountInString(text) <= s.excerptChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:s.excerptChars]) + "..."
}

// looksPrintable treats valid UTF-8 with no control bytes besides
// whitespace as text.
func looksPrintable(head []byte) bool {
	if !utf8.Valid(head) {
		return false
	}
	for _, r := range string(head) {
		if r == utf8.RuneError {
			return false
		}
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
