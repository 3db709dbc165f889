package service

import "errors"

var (
	ErrEmptyMessage          = errors.New("Empty message")
	ErrSessionNotFound       = errors.New("Session not found")
	ErrQuestionnaireNotFound = errors.New("No questionnaire found for user")
	ErrUserIDRequired        = errors.New("userId is required")
	ErrKnowledgeUnavailable  = errors.New("Knowledge base is not configured")
)
