package answer

import (
	"context"
	"log"
	"regexp"
	"strings"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/rag/prompt"
)

var bracketedList = regexp.MustCompile(`\[([^\[\]]+)\]`)

// SuggestionGenerator produces follow-up questions for a completed turn
type SuggestionGenerator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewSuggestionGenerator creates a new follow-up question generator
func NewSuggestionGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *SuggestionGenerator {
	return &SuggestionGenerator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate asks the model for follow-up questions and parses them out of its
// reply. Failures return an empty list; suggestions never fail a turn.
func (g *SuggestionGenerator) Generate(ctx context.Context, question, answer string) []string {
	out, err := g.llmProvider.Generate(ctx, prompt.Suggestions(question, answer))
	if err != nil {
		g.logger.Printf("[WARN] Suggestion generation failed: %v", err)
		return nil
	}
	return ParseSuggestions(out)
}

// ParseSuggestions extracts the suggestion list from raw model output. The
// model is asked for a bracketed array; when one is present its elements are
// split on commas and newlines, otherwise the output is split on newlines.
func ParseSuggestions(output string) []string {
	var raw []string
	if m := bracketedList.FindStringSubmatch(output); m != nil {
		raw = strings.FieldsFunc(m[1], func(r rune) bool {
			return r == ',' || r == '\n'
		})
	} else {
		raw = strings.Split(output, "\n")
	}

	var suggestions []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		s = strings.Trim(s, `"'`)
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}
