package answer

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/store"
)

type fakeLLM struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.Generate(ctx, "")
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"hello", true},
		{"Hi", true},
		{"  HEY  ", true},
		{"How are you", true},
		{"good morning", true},
		{"hello there", false},
		{"What is a logframe?", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGreeting(tt.question))
		})
	}
}

func TestGreetFallsBackOnError(t *testing.T) {
	s := NewSynthesizer(&fakeLLM{err: errors.New("provider down")}, testLogger())

	out := s.Greet(context.Background(), "hello")

	assert.Contains(t, out, "virtual assistant")
}

func TestSynthesizeRunsThreeStages(t *testing.T) {
	fake := &fakeLLM{responses: []string{"draft text", "persona text", "final text"}}
	s := NewSynthesizer(fake, testLogger())

	passages := []store.Passage{
		{Content: "first passage", Source: "a.txt"},
		{Content: "second passage", Source: "b.txt"},
	}

	out, err := s.Synthesize(context.Background(), "How do I design a logframe?", passages, store.PersonaMEL)

	assert.NoError(t, err)
	assert.Equal(t, "final text", out)
	assert.Len(t, fake.prompts, 3)
	// Draft stage sees the joined passages.
	assert.Contains(t, fake.prompts[0], "first passage second passage")
	// Persona stage sees the draft as context.
	assert.Contains(t, fake.prompts[1], "draft text")
	// Final stage sees draft and persona answer joined.
	assert.Contains(t, fake.prompts[2], "draft text\n\npersona text")
	assert.Contains(t, fake.prompts[2], "MEL Expert")
}

func TestSynthesizeDraftFailure(t *testing.T) {
	s := NewSynthesizer(&fakeLLM{err: errors.New("timeout")}, testLogger())

	_, err := s.Synthesize(context.Background(), "q", nil, store.PersonaCommunication)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "draft generation failed")
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "bracketed array",
			output: `Here you go: ["What is a baseline survey?", "How often should indicators be reviewed?"]`,
			want:   []string{"What is a baseline survey?", "How often should indicators be reviewed?"},
		},
		{
			name:   "bracketed newline list",
			output: "[What is a baseline survey?\nHow often should indicators be reviewed?\nWho owns the MEL plan?]",
			want:   []string{"What is a baseline survey?", "How often should indicators be reviewed?", "Who owns the MEL plan?"},
		},
		{
			name:   "newline fallback",
			output: "What is a baseline survey?\nHow often should indicators be reviewed?\n",
			want:   []string{"What is a baseline survey?", "How often should indicators be reviewed?"},
		},
		{
			name:   "blank lines dropped",
			output: "\nFirst question?\n\n\nSecond question?\n",
			want:   []string{"First question?", "Second question?"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSuggestions(tt.output))
		})
	}
}

func TestSuggestionGeneratorSwallowsErrors(t *testing.T) {
	g := NewSuggestionGenerator(&fakeLLM{err: errors.New("rate limited")}, testLogger())

	assert.Nil(t, g.Generate(context.Background(), "q", "a"))
}
