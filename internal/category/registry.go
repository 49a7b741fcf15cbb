// Package category maps human-facing category names to folder identifiers in
// the remote document service. The mapping is fixed at startup; adding a
// category means redeploying configuration.
package category

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownCategory is returned for any key not present in the registry,
// malformed or not. There is no fallback folder.
var ErrUnknownCategory = errors.New("unknown category")

// Entry is one (category, folder) pair.
type Entry struct {
	Category string
	FolderID string
}

// Registry is an immutable, case-insensitive category → folder lookup.
// It is safe for concurrent use.
type Registry struct {
	folders map[string]string
	entries []Entry
}

// NewRegistry builds a registry from configuration. Keys are normalized to
// lower case; the entry order is deterministic (sorted by category).
func NewRegistry(folders map[string]string) *Registry {
	m := make(map[string]string, len(folders))
	for k, v := range folders {
		m[strings.ToLower(k)] = v
	}

	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Category: k, FolderID: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Category < entries[j].Category })

	return &Registry{folders: m, entries: entries}
}

// Resolve returns the folder identifier for a category key. Lookup is
// case-insensitive; an unregistered key yields ErrUnknownCategory.
func (r *Registry) Resolve(key string) (string, error) {
	folder, ok := r.folders[strings.ToLower(key)]
	if !ok {
		return "", ErrUnknownCategory
	}
	return folder, nil
}

// Entries returns all registered (category, folder) pairs in sorted order.
// The returned slice must not be mutated.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Len reports the number of registered categories.
func (r *Registry) Len() int {
	return len(r.entries)
}
