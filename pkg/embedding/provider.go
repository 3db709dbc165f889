package embedding

import "context"

// Task types understood by Gemini; other backends ignore them.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Dimensions of the stored vectors; knowledge_documents.embedding_value is vector(768).
const Dimensions = 768

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
