package store

// Citation attributes an answer to a corpus document. Link holds a single
// space when the document key had no metadata catalog entry.
type Citation struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Markdown renders the citation as a markdown link.
func (c Citation) Markdown() string {
	return "[" + c.Title + "](" + c.Link + ")"
}

// Passage is a retrieved chunk of source text with provenance metadata.
// It is the unit the retrieval orchestrator merges, deduplicates and feeds
// into answer synthesis.
type Passage struct {
	Content string `json:"content"`
	Source  string `json:"source"` // originating file identifier, e.g. "PN-ABC-123.txt"
}

// Key returns the identity used for deduplication within a retrieval pass.
// Two passages with the same content from the same source are the same passage.
func (p Passage) Key() string {
	return p.Source + "\x00" + p.Content
}

// DocumentChunk is a unit produced by the loader + splitter, ready to be
// embedded and indexed. Immutable once indexed.
type DocumentChunk struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}
