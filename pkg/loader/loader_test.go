package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry("http://localhost:9998")

	tests := []struct {
		filename string
		want     interface{}
	}{
		{"report.txt", &TextLoader{}},
		{"Metadata.CSV", &TextLoader{}},
		{"notes.md", &TextLoader{}},
		{"page.html", &HTMLLoader{}},
		{"deck.pptx", &ExtractorLoader{}},
		{"scan.pdf", &ExtractorLoader{}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			l, err := r.Lookup(tt.filename)
			assert.NoError(t, err)
			assert.IsType(t, tt.want, l)
		})
	}
}

func TestRegistryUnsupportedExtension(t *testing.T) {
	r := NewRegistry("http://localhost:9998")

	_, err := r.Lookup("archive.zip")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = r.Lookup("no-extension")
	assert.Error(t, err)

	assert.False(t, r.Supported("archive.zip"))
	assert.True(t, r.Supported("doc.txt"))
}

func TestTextLoader(t *testing.T) {
	l := NewTextLoader()

	path := writeTemp(t, "doc.txt", "  MEL plan guidance.\n")
	got, err := l.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "MEL plan guidance.", got)
}

func TestTextLoaderRejectsEmptyFile(t *testing.T) {
	l := NewTextLoader()

	path := writeTemp(t, "empty.txt", "   \n")
	_, err := l.Load(path)
	assert.Error(t, err)
}

func TestTextLoaderRejectsInvalidUTF8(t *testing.T) {
	l := NewTextLoader()

	path := filepath.Join(t.TempDir(), "bad.txt")
	assert.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644))

	_, err := l.Load(path)
	assert.Error(t, err)
}

func TestHTMLLoaderStripsMarkupAndScripts(t *testing.T) {
	l := NewHTMLLoader()

	path := writeTemp(t, "page.html", `<html><head>
<style>p { color: red; }</style>
<script>alert("hi")</script>
</head><body>
<h1>Evaluation Report</h1>
<p>Findings and recommendations.</p>
</body></html>`)

	got, err := l.Load(path)
	assert.NoError(t, err)
	assert.Contains(t, got, "Evaluation Report")
	assert.Contains(t, got, "Findings and recommendations.")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color: red")
}
