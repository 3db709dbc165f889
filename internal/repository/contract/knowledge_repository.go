package contract

import (
	"context"

	"mindly-be/internal/entity"
	"mindly-be/internal/repository/specification"
)

type KnowledgeRepository interface {
	// UpsertBulk inserts documents or replaces them by DocKey.
	UpsertBulk(ctx context.Context, documents []*entity.KnowledgeDocument) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar orders documents by cosine distance to embedding. An empty
	// category searches the whole knowledge base.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, category string) ([]*entity.ScoredKnowledgeDocument, error)
}
