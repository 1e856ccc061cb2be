package utils

import "strings"

// Splitting defaults used for uploaded-document ingestion.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// SplitText splits text into chunks of approximately chunkSize characters
// with the given overlap. It prefers breaking on paragraph boundaries, then
// line boundaries, and only slices mid-line when a single segment exceeds
// the chunk size.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	if len([]rune(text)) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	segments := splitBySeparators(text, []string{"\n\n", "\n"}, chunkSize)

	var chunks []string
	var current []rune
	for _, seg := range segments {
		segRunes := []rune(seg)
		if len(current)+len(segRunes) > chunkSize && len(current) > 0 {
			chunks = append(chunks, string(current))
			// Carry the overlap tail into the next chunk.
			if overlap > 0 && len(current) > overlap {
				current = append([]rune{}, current[len(current)-overlap:]...)
			} else {
				current = nil
			}
		}
		current = append(current, segRunes...)
	}
	if len(current) > 0 && strings.TrimSpace(string(current)) != "" {
		chunks = append(chunks, string(current))
	}

	return chunks
}

// splitBySeparators recursively breaks text on the separator hierarchy until
// every segment fits within chunkSize, hard-slicing as the last resort.
func splitBySeparators(text string, separators []string, chunkSize int) []string {
	if len([]rune(text)) <= chunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return hardSlice(text, chunkSize)
	}

	sep := separators[0]
	parts := strings.SplitAfter(text, sep)
	var out []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, splitBySeparators(part, separators[1:], chunkSize)...)
	}
	return out
}

func hardSlice(text string, chunkSize int) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
