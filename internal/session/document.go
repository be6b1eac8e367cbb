package session

import (
	"fmt"
	"strings"
)

// Document pairs a server-assigned identity with its display name. The name
// is the client-side de-duplication key.
type Document struct {
	ID   string
	Name string
}

// ConfirmFunc answers a synchronous yes/no question posed to the user.
type ConfirmFunc func(question string) bool

// Registry tracks every known document and which one is currently active.
// Names are expected to be unique at insertion time; callers enforce that
// through ContainsName before starting an ingestion.
type Registry struct {
	docs       []Document
	activeID   string
	activeName string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register inserts the document if its id is not present yet. Registering a
// known id is a no-op; name uniqueness is the caller's concern.
func (r *Registry) Register(id, name string) {
	if id == "" {
		return
	}
	for _, doc := range r.docs {
		if doc.ID == id {
			return
		}
	}
	r.docs = append(r.docs, Document{ID: id, Name: name})
}

// ContainsName reports whether name exactly matches a registered document
// name. The match is case-sensitive.
func (r *Registry) ContainsName(name string) bool {
	for _, doc := range r.docs {
		if doc.Name == name {
			return true
		}
	}
	return false
}

// SetActive marks id as the active document. Unknown ids are ignored.
func (r *Registry) SetActive(id string) {
	for _, doc := range r.docs {
		if doc.ID == id {
			r.activeID = doc.ID
			r.activeName = doc.Name
			return
		}
	}
}

// Active returns the active document, if one is bound.
func (r *Registry) Active() (Document, bool) {
	if r.activeID == "" {
		return Document{}, false
	}
	return Document{ID: r.activeID, Name: r.activeName}, true
}

// Delete asks confirm before removing id and reports whether anything
// changed. A declined confirmation removes nothing. Deleting the active
// document clears the active binding; no other document is auto-selected.
func (r *Registry) Delete(id string, confirm ConfirmFunc) (Document, bool) {
	index := -1
	for i, doc := range r.docs {
		if doc.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return Document{}, false
	}
	target := r.docs[index]
	if confirm != nil && !confirm(fmt.Sprintf("Delete %q from your documents?", target.Name)) {
		return Document{}, false
	}
	r.docs = append(r.docs[:index], r.docs[index+1:]...)
	if r.activeID == id {
		r.activeID = ""
		r.activeName = ""
	}
	return target, true
}

// All returns a copy of the registered documents in insertion order.
func (r *Registry) All() []Document {
	return append([]Document(nil), r.docs...)
}

// FilterByName returns the documents whose name contains query,
// case-insensitively. An empty query returns everything.
func (r *Registry) FilterByName(query string) []Document {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.All()
	}
	matches := []Document{}
	for _, doc := range r.docs {
		if strings.Contains(strings.ToLower(doc.Name), query) {
			matches = append(matches, doc)
		}
	}
	return matches
}

func (r *Registry) Len() int {
	return len(r.docs)
}
