package loader

import (
	"fmt"
	"strings"
)

// Loader reads a file from disk and produces its normalized plain text.
type Loader interface {
	Load(path string) (string, error)
}

// Registry maps a file extension (with leading dot, lowercase) to the
// parsing strategy for it.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry builds the default extension map. Binary formats (pdf, office
// documents, images) go through the extraction service; markup and text
// formats are parsed in-process.
func NewRegistry(extractorBaseURL string) *Registry {
	text := NewTextLoader()
	html := NewHTMLLoader()
	extract := NewExtractorLoader(extractorBaseURL)

	return &Registry{
		loaders: map[string]Loader{
			".csv":  text,
			".enex": text,
			".txt":  text,
			".eml":  text,
			".md":   text,
			".mmd":  text,
			".srt":  text,
			".html": html,
			".pdf":  extract,
			".epub": extract,
			".odt":  extract,
			".pptx": extract,
			".ppt":  extract,
			".doc":  extract,
			".docx": extract,
			".jpg":  extract,
			".png":  extract,
		},
	}
}

// Lookup returns the loader for a filename's extension.
func (r *Registry) Lookup(filename string) (Loader, error) {
	ext := extOf(filename)
	l, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
	return l, nil
}

// Supported reports whether the filename's extension has a registered loader.
func (r *Registry) Supported(filename string) bool {
	_, ok := r.loaders[extOf(filename)]
	return ok
}

func extOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}
