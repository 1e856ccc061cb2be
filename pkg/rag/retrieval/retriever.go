package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/rag/prompt"
	"dec-assist-be/pkg/store"
)

// Searcher is the contract for a similarity-searchable passage index.
// Both the shared corpus (pgvector) and per-session in-memory indices
// implement it.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]store.Passage, error)
}

// multiQueryVariants is the number of alternative phrasings requested per
// retrieval, in addition to the original question.
const multiQueryVariants = 3

// MultiQueryRetriever widens recall by searching with LLM-generated
// rephrasings of the question alongside the original, unioning the results
type MultiQueryRetriever struct {
	llmProvider llm.LLMProvider
	searcher    Searcher
	logger      *log.Logger
}

// NewMultiQueryRetriever creates a multi-query retriever over the given index
func NewMultiQueryRetriever(llmProvider llm.LLMProvider, searcher Searcher, logger *log.Logger) *MultiQueryRetriever {
	return &MultiQueryRetriever{
		llmProvider: llmProvider,
		searcher:    searcher,
		logger:      logger,
	}
}

// Retrieve searches with the original question plus generated variants and
// returns the deduplicated union, original-question results first. Variant
// generation failure degrades to a plain single-query search.
func (m *MultiQueryRetriever) Retrieve(ctx context.Context, question string, k int) ([]store.Passage, error) {
	queries := []string{question}
	queries = append(queries, m.generateVariants(ctx, question)...)

	var union []store.Passage
	seen := make(map[string]bool)

	for _, q := range queries {
		results, err := m.searcher.Search(ctx, q, k)
		if err != nil {
			if q == question {
				return nil, fmt.Errorf("retrieval failed: %w", err)
			}
			m.logger.Printf("[WARN] Variant query search failed, skipping: %v", err)
			continue
		}
		for _, p := range results {
			if seen[p.Key()] {
				continue
			}
			seen[p.Key()] = true
			union = append(union, p)
		}
	}

	m.logger.Printf("[DEBUG] Multi-query retrieval: %d queries, %d unique passages", len(queries), len(union))
	return union, nil
}

func (m *MultiQueryRetriever) generateVariants(ctx context.Context, question string) []string {
	out, err := m.llmProvider.Generate(ctx, prompt.MultiQuery(question, multiQueryVariants), llm.WithTemperature(0))
	if err != nil {
		m.logger.Printf("[WARN] Query variant generation failed: %v", err)
		return nil
	}

	var variants []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == question {
			continue
		}
		variants = append(variants, line)
		if len(variants) == multiQueryVariants {
			break
		}
	}
	return variants
}
