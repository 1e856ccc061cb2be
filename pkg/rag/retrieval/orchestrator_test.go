package retrieval

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/store"
)

type fakeLLM struct {
	generate func(prompt string) (string, error)
	calls    int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	if f.generate != nil {
		return f.generate(prompt)
	}
	return "", nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, "")
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func passages(source string, n int) []store.Passage {
	out := make([]store.Passage, n)
	for i := range out {
		out[i] = store.Passage{Content: fmt.Sprintf("%s-%d", source, i), Source: source}
	}
	return out
}

func TestMergeDualCapsSessionSide(t *testing.T) {
	o := NewOrchestrator(&fakeLLM{}, testLogger())

	merged := o.MergeDual(passages("session.pdf", 12), passages("corpus.txt", 10))

	assert.Len(t, merged, mergeCap)
	// First sessionTake entries come from the session index.
	for i := 0; i < sessionTake; i++ {
		assert.Equal(t, "session.pdf", merged[i].Source)
	}
	// Shared side skips its top sharedSkip hits.
	assert.Equal(t, "corpus.txt-3", merged[sessionTake].Content)
}

func TestMergeDualDeduplicates(t *testing.T) {
	o := NewOrchestrator(&fakeLLM{}, testLogger())

	dup := store.Passage{Content: "shared chunk", Source: "both.txt"}
	session := []store.Passage{dup, {Content: "only session", Source: "s.pdf"}}
	shared := []store.Passage{
		{Content: "skip0", Source: "c.txt"},
		{Content: "skip1", Source: "c.txt"},
		{Content: "skip2", Source: "c.txt"},
		dup,
		{Content: "kept", Source: "c.txt"},
	}

	merged := o.MergeDual(session, shared)

	assert.Equal(t, []store.Passage{
		dup,
		{Content: "only session", Source: "s.pdf"},
		{Content: "kept", Source: "c.txt"},
	}, merged)
}

func TestMergeDualFewSessionResults(t *testing.T) {
	o := NewOrchestrator(&fakeLLM{}, testLogger())

	merged := o.MergeDual(passages("s.pdf", 2), passages("c.txt", 20))

	assert.Len(t, merged, mergeCap)
	assert.Equal(t, "s.pdf", merged[0].Source)
	assert.Equal(t, "s.pdf", merged[1].Source)
	assert.Equal(t, "c.txt-3", merged[2].Content)
}

func TestSelectSingleWindow(t *testing.T) {
	o := NewOrchestrator(&fakeLLM{}, testLogger())

	tests := []struct {
		name  string
		in    int
		want  int
		first string
	}{
		{"empty", 0, 0, ""},
		{"fewer than skip", 2, 0, ""},
		{"exactly skip", 3, 0, ""},
		{"inside window", 7, 4, "c.txt-3"},
		{"full window", 20, singleTake, "c.txt-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.SelectSingle(passages("c.txt", tt.in))
			assert.Len(t, got, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.first, got[0].Content)
			}
		})
	}
}

func TestSelectSingleDeduplicatesBeforeWindow(t *testing.T) {
	o := NewOrchestrator(&fakeLLM{}, testLogger())

	in := passages("c.txt", 6)
	in = append([]store.Passage{in[0], in[0]}, in...)

	got := o.SelectSingle(in)

	// Duplicates collapse before the window is taken.
	assert.Equal(t, "c.txt-3", got[0].Content)
	assert.Len(t, got, 3)
}

func TestGradeSkippedAtOrBelowThreshold(t *testing.T) {
	fake := &fakeLLM{}
	o := NewOrchestrator(fake, testLogger())

	in := passages("c.txt", gradeThreshold)
	got := o.gradeIfOversized(context.Background(), "q", in)

	assert.Equal(t, in, got)
	assert.Zero(t, fake.calls)
}

func TestGradeFiltersOversizedSet(t *testing.T) {
	fake := &fakeLLM{generate: func(prompt string) (string, error) {
		return "no", nil
	}}
	o := NewOrchestrator(fake, testLogger())

	in := passages("c.txt", gradeThreshold+3)
	got := o.gradeIfOversized(context.Background(), "q", in)

	assert.Empty(t, got)
	assert.Equal(t, gradeThreshold+3, fake.calls)
}

func TestGradeKeepsPassageOnGraderError(t *testing.T) {
	fake := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", fmt.Errorf("provider down")
	}}
	o := NewOrchestrator(fake, testLogger())

	in := passages("c.txt", gradeThreshold+1)
	got := o.gradeIfOversized(context.Background(), "q", in)

	assert.Equal(t, in, got)
}
