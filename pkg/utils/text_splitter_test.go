package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInputSingleChunk(t *testing.T) {
	chunks := SplitText("a short document", 1000, 100)
	assert.Equal(t, []string{"a short document"}, chunks)
}

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Nil(t, SplitText("", 1000, 100))
	assert.Nil(t, SplitText("   \n  ", 1000, 100))
}

func TestSplitTextPrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("a", 60)
	para2 := strings.Repeat("b", 60)
	text := para1 + "\n\n" + para2

	chunks := SplitText(text, 80, 0)

	assert.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], para1)
	assert.Contains(t, chunks[1], para2)
}

func TestSplitTextOverlapCarriesTail(t *testing.T) {
	para1 := strings.Repeat("a", 60)
	para2 := strings.Repeat("b", 60)
	text := para1 + "\n\n" + para2

	chunks := SplitText(text, 80, 20)

	assert.Len(t, chunks, 2)
	// The second chunk starts with the tail of the first.
	tail := chunks[0][len(chunks[0])-20:]
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

func TestSplitTextHardSlicesOversizedSegment(t *testing.T) {
	text := strings.Repeat("x", 250)

	chunks := SplitText(text, 100, 0)

	assert.GreaterOrEqual(t, len(chunks), 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitTextChunksStayWithinSizeBound(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = strings.Repeat("w", 30)
	}
	text := strings.Join(lines, "\n")

	chunks := SplitText(text, 100, 10)

	assert.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100+10)
	}
}
