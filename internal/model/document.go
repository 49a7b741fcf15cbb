package model

// DocumentRecord is a read-only projection of one item enumerated from a
// category folder in the remote document service. Identity is owned by the
// remote service; ID and Size are optional extension fields and may be empty.
type DocumentRecord struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Link     string `json:"link"`
	Category string `json:"category"`
	Size     int64  `json:"size,omitempty"`
}

// DocumentEntry is the per-category listing shape returned by
// GET /api/documents/:category.
type DocumentEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// UploadedFile describes the stored file returned after an upload.
type UploadedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// SearchResult is one entry in the merged search response. Type distinguishes
// content kinds ("document", "news"); results carry no score.
type SearchResult struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}
