package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/pkg/embedding"
	"dec-assist-be/pkg/store"
	"dec-assist-be/pkg/vectorstore"
)

// corpusSearcher adapts the pgvector corpus repository to the retrieval
// searcher contract: embed the query, then similarity-search the shared
// corpus.
type corpusSearcher struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func newCorpusSearcher(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider) *corpusSearcher {
	return &corpusSearcher{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (s *corpusSearcher) Search(ctx context.Context, query string, k int) ([]store.Passage, error) {
	vector, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.CorpusChunkRepository().SearchSimilar(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	passages := make([]store.Passage, len(chunks))
	for i, c := range chunks {
		passages[i] = store.Passage{Content: c.Content, Source: c.Source}
	}
	return passages, nil
}

// memIndexSearcher adapts a session's in-memory index to the same contract.
type memIndexSearcher struct {
	index             *vectorstore.MemIndex
	embeddingProvider embedding.EmbeddingProvider
}

func newMemIndexSearcher(index *vectorstore.MemIndex, embeddingProvider embedding.EmbeddingProvider) *memIndexSearcher {
	return &memIndexSearcher{
		index:             index,
		embeddingProvider: embeddingProvider,
	}
}

func (s *memIndexSearcher) Search(ctx context.Context, query string, k int) ([]store.Passage, error) {
	vector, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}
	return s.index.Search(vector, k)
}

// newPipelineLogger creates the dedicated file logger for LLM pipeline
// tracing, separate from the structured application log.
func newPipelineLogger() *log.Logger {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return log.New(os.Stderr, "[RAG] ", log.LstdFlags)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "llm_rag.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stderr, "[RAG] ", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}
