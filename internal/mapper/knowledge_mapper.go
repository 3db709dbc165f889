package mapper

import (
	"time"

	"mindly-be/internal/entity"
	"mindly-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(d *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeDocument{
		Id:             d.Id,
		DocKey:         d.DocKey,
		Content:        d.Content,
		Category:       d.Category,
		Type:           d.Type,
		Source:         d.Source,
		PdfPath:        d.PdfPath,
		EmbeddingValue: d.EmbeddingValue.Slice(),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(e *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.KnowledgeDocument{
		Id:             e.Id,
		DocKey:         e.DocKey,
		Content:        e.Content,
		Category:       e.Category,
		Type:           e.Type,
		Source:         e.Source,
		PdfPath:        e.PdfPath,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(documents []*model.KnowledgeDocument) []*entity.KnowledgeDocument {
	entities := make([]*entity.KnowledgeDocument, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *KnowledgeMapper) ToModels(documents []*entity.KnowledgeDocument) []*model.KnowledgeDocument {
	models := make([]*model.KnowledgeDocument, len(documents))
	for i, d := range documents {
		models[i] = m.ToModel(d)
	}
	return models
}
