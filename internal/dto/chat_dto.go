package dto

import "mindly-be/pkg/wellness"

type ChatRequest struct {
	Message   string     `json:"message"`
	SessionId string     `json:"session_id"`
	UserId    FlexibleID `json:"user_id"`
}

type ChatResponse struct {
	Response string           `json:"response"`
	Metrics  wellness.Metrics `json:"metrics"`
}

type MetricsHistoryItem struct {
	Timestamp int              `json:"timestamp"`
	Metrics   wellness.Metrics `json:"metrics"`
	Message   string           `json:"message"`
}

type MetricsResponse struct {
	Latest  wellness.Metrics     `json:"latest"`
	Average wellness.Metrics     `json:"average"`
	History []MetricsHistoryItem `json:"history"`
}

type ErrorBody struct {
	Error string `json:"error"`
}
