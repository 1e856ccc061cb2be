package answer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/rag/prompt"
	"dec-assist-be/pkg/store"
)

// greetings are short-circuited before the retrieval pipeline runs. Matching
// is exact on the trimmed, lowercased question.
var greetings = map[string]bool{
	"hello":        true,
	"hi":           true,
	"hey":          true,
	"how are you":  true,
	"good morning": true,
}

// Synthesizer produces the final answer through staged generation: a
// grounding draft from the retrieved passages, a persona specialization pass,
// and an audience-facing composition over both
type Synthesizer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewSynthesizer creates a new answer synthesizer
func NewSynthesizer(llmProvider llm.LLMProvider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// IsGreeting reports whether the question is a bare greeting that should
// bypass retrieval entirely.
func IsGreeting(question string) bool {
	return greetings[strings.ToLower(strings.TrimSpace(question))]
}

// Greet answers a bare greeting. Generation failure falls back to a canned
// welcome so a greeting can never error out a turn.
func (s *Synthesizer) Greet(ctx context.Context, question string) string {
	out, err := s.llmProvider.Generate(ctx, prompt.Greeting(question))
	if err != nil || strings.TrimSpace(out) == "" {
		s.logger.Printf("[WARN] Greeting generation failed, using canned response: %v", err)
		return "Hello! I am a virtual assistant for the development-sector knowledge base. How can I help you today?"
	}
	return strings.TrimSpace(out)
}

// Synthesize runs the three generation stages and returns the final answer.
// The persona stage sees the draft as its context; the final stage sees the
// draft and the persona answer joined together.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	question string,
	passages []store.Passage,
	persona store.Persona,
) (string, error) {

	context_ := joinPassages(passages)

	draft, err := s.llmProvider.Generate(ctx, prompt.Draft(question, context_), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("draft generation failed: %w", err)
	}
	s.logger.Printf("[DEBUG] Draft stage complete (%d chars)", len(draft))

	personaAnswer, err := s.llmProvider.Generate(ctx, prompt.PersonaAnswer(persona, question, draft), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("persona generation failed: %w", err)
	}
	s.logger.Printf("[DEBUG] Persona stage complete (%d chars)", len(personaAnswer))

	combined := draft + "\n\n" + personaAnswer
	final, err := s.llmProvider.Generate(ctx, prompt.Final(question, combined, prompt.PersonaTitle(persona)), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("final composition failed: %w", err)
	}
	s.logger.Printf("[DEBUG] Final stage complete (%d chars)", len(final))

	return strings.TrimSpace(final), nil
}

func joinPassages(passages []store.Passage) string {
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = p.Content
	}
	return strings.Join(parts, " ")
}
