package dto

import "github.com/google/uuid"

type SearchKnowledgeRequest struct {
	Query    string `query:"q" validate:"required"`
	K        int    `query:"k" validate:"omitempty,min=1,max=20"`
	Category string `query:"category"`
}

type KnowledgeResult struct {
	Id         uuid.UUID `json:"id"`
	Key        string    `json:"key"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	Similarity float64   `json:"similarity"`
}

type IngestDocument struct {
	Key      string `json:"key"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
	Type     string `json:"type"`
	Source   string `json:"source"`
}

type IngestDocumentsRequest struct {
	Documents []IngestDocument `json:"documents" validate:"required,min=1,max=100,dive"`
}

type IngestDocumentsResponse struct {
	Queued int `json:"queued"`
}

// PublishIngestKnowledgeMessage is the async ingestion payload.
type PublishIngestKnowledgeMessage struct {
	Documents []IngestDocument `json:"documents"`
}

type IngestReport struct {
	Stored      int `json:"stored"`
	TotalChunks int `json:"total_chunks"`
}
