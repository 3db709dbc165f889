package entity

import (
	"time"

	"github.com/google/uuid"
)

// Knowledge document types.
const (
	KnowledgeTypeTechnique = "technique"
	KnowledgeTypeStrategy  = "strategy"
	KnowledgeTypeHealth    = "health"
	KnowledgeTypeResource  = "resource"
	KnowledgeTypePractice  = "practice"
	KnowledgeTypeResearch  = "research"
)

// KnowledgeDocument is one retrievable passage of the knowledge base.
// DocKey is the stable external id ("doc_3", "pdf_stress_12").
type KnowledgeDocument struct {
	Id             uuid.UUID
	DocKey         string
	Content        string
	Category       string
	Type           string
	Source         string
	PdfPath        string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// ScoredKnowledgeDocument pairs a passage with its cosine similarity to the query.
type ScoredKnowledgeDocument struct {
	Document   *KnowledgeDocument
	Similarity float64
}
