package embedding

import "context"

// Task types hint the provider at how the embedding will be used. Providers
// that don't distinguish (Ollama) ignore them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingProvider converts text into a fixed-size numeric vector.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
