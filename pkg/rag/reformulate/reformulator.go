package reformulate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/rag/prompt"
)

// Reformulator rewrites user questions into standalone retrieval queries
type Reformulator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewReformulator creates a new question reformulator
func NewReformulator(llmProvider llm.LLMProvider, logger *log.Logger) *Reformulator {
	return &Reformulator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Reformulate rewrites the question so it is understandable without the chat
// history. History entries are prior reformulated questions, oldest first.
func (r *Reformulator) Reformulate(ctx context.Context, history []string, question string) (string, error) {
	out, err := r.llmProvider.Generate(ctx, prompt.Reformulate(history, question), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("reformulation failed: %w", err)
	}

	reformulated := strings.TrimSpace(out)
	if reformulated == "" {
		r.logger.Printf("[WARN] Empty reformulation, falling back to original question")
		return question, nil
	}

	r.logger.Printf("[DEBUG] Reformulated question: %s", reformulated)
	return reformulated, nil
}

// ReformulateMEL applies the MEL-specific second pass. Plan-style requests
// come out phrased as MEL plan design questions; already well-formed
// questions pass through unchanged.
func (r *Reformulator) ReformulateMEL(ctx context.Context, question string) (string, error) {
	out, err := r.llmProvider.Generate(ctx, prompt.ReformulateMEL(question), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("MEL reformulation failed: %w", err)
	}

	reformulated := strings.TrimSpace(out)
	if reformulated == "" {
		return question, nil
	}

	r.logger.Printf("[DEBUG] MEL reformulated question: %s", reformulated)
	return reformulated, nil
}
