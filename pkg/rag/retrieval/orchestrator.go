package retrieval

import (
	"context"
	"log"
	"strings"

	"dec-assist-be/pkg/llm"
	"dec-assist-be/pkg/rag/prompt"
	"dec-assist-be/pkg/store"
)

// Window bounds for passage selection. The dual-index merge keeps up to
// sessionTake session passages, then shared passages after skipping the top
// sharedSkip, up to mergeCap total. The single-index path keeps the slice
// [singleSkip, singleSkip+singleTake) of the deduplicated results.
const (
	sessionTake    = 8
	sharedSkip     = 3
	mergeCap       = 13
	singleSkip     = 3
	singleTake     = 8
	gradeThreshold = 17

	searchK = 20
)

// Orchestrator selects the passage set for a turn, merging session-document
// retrievals with the shared corpus and grading oversized result sets
type Orchestrator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

// NewOrchestrator creates a new retrieval orchestrator
func NewOrchestrator(llmProvider llm.LLMProvider, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Retrieve runs retrieval against the shared corpus and, when the session has
// uploaded documents, its session index, then merges and prunes the results.
// Session index retrieval failures degrade to corpus-only retrieval.
func (o *Orchestrator) Retrieve(
	ctx context.Context,
	shared *MultiQueryRetriever,
	session *MultiQueryRetriever,
	question string,
) ([]store.Passage, error) {

	sharedResults, err := shared.Retrieve(ctx, question, searchK)
	if err != nil {
		return nil, err
	}

	var passages []store.Passage
	if session != nil {
		sessionResults, serr := session.Retrieve(ctx, question, searchK)
		if serr != nil {
			o.logger.Printf("[WARN] Session index retrieval failed, using shared corpus only: %v", serr)
			passages = o.SelectSingle(sharedResults)
		} else {
			passages = o.MergeDual(sessionResults, sharedResults)
		}
	} else {
		passages = o.SelectSingle(sharedResults)
	}

	passages = o.gradeIfOversized(ctx, question, passages)

	o.logger.Printf("[DEBUG] Retrieval selected %d passages", len(passages))
	return passages, nil
}

// MergeDual combines session-document passages with shared-corpus passages.
// Session passages are deduplicated and capped at sessionTake; shared
// passages then fill the remainder after skipping the top sharedSkip, up to
// mergeCap total. Passages already taken from the session side are skipped.
func (o *Orchestrator) MergeDual(sessionResults, sharedResults []store.Passage) []store.Passage {
	merged := make([]store.Passage, 0, mergeCap)
	seen := make(map[string]bool)

	for _, p := range sessionResults {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		merged = append(merged, p)
		if len(merged) == sessionTake {
			break
		}
	}

	for i, p := range sharedResults {
		if i < sharedSkip {
			continue
		}
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		merged = append(merged, p)
		if len(merged) == mergeCap {
			break
		}
	}

	return merged
}

// SelectSingle deduplicates shared-corpus passages and keeps the working
// window: the top singleSkip hits are dropped as near-duplicates of the
// query phrasing, then up to singleTake are kept. A result set that never
// reaches past the skipped head yields nothing.
func (o *Orchestrator) SelectSingle(results []store.Passage) []store.Passage {
	deduped := make([]store.Passage, 0, len(results))
	seen := make(map[string]bool)
	for _, p := range results {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		deduped = append(deduped, p)
	}

	if len(deduped) <= singleSkip {
		return nil
	}
	end := singleSkip + singleTake
	if end > len(deduped) {
		end = len(deduped)
	}
	return deduped[singleSkip:end]
}

// gradeIfOversized filters passages through the LLM relevance grader, but
// only when the set is large enough for grading to pay for its latency.
// Grader failures keep the passage rather than dropping it.
func (o *Orchestrator) gradeIfOversized(ctx context.Context, question string, passages []store.Passage) []store.Passage {
	if len(passages) <= gradeThreshold {
		return passages
	}

	o.logger.Printf("[DEBUG] Grading %d passages for relevance", len(passages))

	kept := make([]store.Passage, 0, len(passages))
	for _, p := range passages {
		out, err := o.llmProvider.Generate(ctx, prompt.GradeRelevance(question, p.Content), llm.WithTemperature(0))
		if err != nil {
			o.logger.Printf("[WARN] Relevance grading failed, keeping passage: %v", err)
			kept = append(kept, p)
			continue
		}
		if strings.Contains(strings.ToLower(out), "yes") {
			kept = append(kept, p)
		}
	}

	o.logger.Printf("[DEBUG] Relevance grading kept %d of %d passages", len(kept), len(passages))
	return kept
}
