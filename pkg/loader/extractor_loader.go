package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ExtractorLoader sends binary documents (pdf, office formats, images) to a
// Tika-compatible extraction service and returns the plain text it produces.
type ExtractorLoader struct {
	baseURL string
	client  *http.Client
}

func NewExtractorLoader(baseURL string) *ExtractorLoader {
	if baseURL == "" {
		baseURL = "http://localhost:9998"
	}
	return &ExtractorLoader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (l *ExtractorLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPut, l.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction service unavailable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction failed for %s: status %d", path, resp.StatusCode)
	}

	content := strings.TrimSpace(string(body))
	if content == "" {
		return "", fmt.Errorf("extraction produced no text for %s", path)
	}
	return content, nil
}
