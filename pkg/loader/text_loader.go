package loader

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// TextLoader reads UTF-8 text files as-is. Covers txt, md, mmd, csv, srt,
// enex and eml: formats whose payload is already readable text.
type TextLoader struct{}

func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

func (l *TextLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8: %s", path)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("file is empty: %s", path)
	}
	return content, nil
}
