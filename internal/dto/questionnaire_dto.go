package dto

import (
	"encoding/json"
	"time"
)

type SaveQuestionnaireRequest struct {
	UserId    FlexibleID         `json:"userId" validate:"required"`
	Timestamp json.RawMessage    `json:"timestamp"`
	Responses map[string]float64 `json:"responses" validate:"required"`
}

type SaveQuestionnaireResponse struct {
	Saved bool `json:"saved"`
}

type QuestionnaireResponse struct {
	UserId    string             `json:"userId"`
	Timestamp json.RawMessage    `json:"timestamp"`
	Responses map[string]float64 `json:"responses"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type CategoryScore struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
	Items    int     `json:"items"`
	Included bool    `json:"included"`
	Label    string  `json:"label,omitempty"`
}

type QuestionnaireSummaryResponse struct {
	Context    string          `json:"context"`
	Categories []CategoryScore `json:"categories"`
}
