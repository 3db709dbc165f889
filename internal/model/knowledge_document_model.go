package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type KnowledgeDocument struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocKey         string          `gorm:"type:text;not null;uniqueIndex"`
	Content        string          `gorm:"type:text;not null"`
	Category       string          `gorm:"type:text;not null;index"`
	Type           string          `gorm:"type:text"`
	Source         string          `gorm:"type:text"`
	PdfPath        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 and nomic-embed-text are both 768-d
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
