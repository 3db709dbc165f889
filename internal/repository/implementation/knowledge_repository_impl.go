package implementation

import (
	"context"

	"mindly-be/internal/entity"
	"mindly-be/internal/mapper"
	"mindly-be/internal/model"
	"mindly-be/internal/repository/contract"
	"mindly-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeRepositoryImpl) UpsertBulk(ctx context.Context, documents []*entity.KnowledgeDocument) error {
	if len(documents) == 0 {
		return nil
	}
	models := r.mapper.ToModels(documents)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "category", "type", "source", "pdf_path", "embedding_value", "updated_at"}),
		}).
		Create(models).Error
	if err != nil {
		return err
	}

	for i, m := range models {
		*documents[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	var models []*model.KnowledgeDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeDocument{}).Count(&count).Error
	return count, err
}

// SearchSimilar ranks passages by cosine similarity (1 - cosine distance).
func (r *KnowledgeRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, category string) ([]*entity.ScoredKnowledgeDocument, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.KnowledgeDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("knowledge_documents").
		Select("knowledge_documents.*, 1 - (embedding_value <=> ?) as similarity", queryVector)
	query = specification.ByCategory{Category: category}.Apply(query)

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredKnowledgeDocument, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredKnowledgeDocument{
			Document:   r.mapper.ToEntity(&res.KnowledgeDocument),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
