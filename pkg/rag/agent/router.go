package agent

import (
	"context"
	"log"
	"strings"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/rag/prompt"
	"dec-assist-be/pkg/store"
)

// Router classifies a question into the expert persona best suited to it
type Router struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewRouter creates a new persona router
func NewRouter(llmProvider llm.LLMProvider, logger *log.Logger) *Router {
	return &Router{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Route asks the model for the best-fitting persona and matches its output
// against the known persona names. Unmatched or failed classifications fall
// back to Communication so routing never blocks a turn.
func (r *Router) Route(ctx context.Context, question string) store.Persona {
	out, err := r.llmProvider.Generate(ctx, prompt.RouteQuestion(question), llm.WithTemperature(0))
	if err != nil {
		r.logger.Printf("[WARN] Persona classification failed, defaulting to Communication: %v", err)
		return store.PersonaCommunication
	}

	persona := matchPersona(out)
	r.logger.Printf("[DEBUG] Routed question to persona: %s", persona)
	return persona
}

// matchPersona scans the raw model output for a known persona name. The first
// persona whose name appears wins; declaration order keeps matching stable
// when the model rambles.
func matchPersona(output string) store.Persona {
	normalized := strings.ToLower(output)
	for _, p := range store.AllPersonas {
		if strings.Contains(normalized, strings.ToLower(string(p))) {
			return p
		}
	}
	return store.PersonaCommunication
}
