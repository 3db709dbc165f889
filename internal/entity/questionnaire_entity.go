package entity

import (
	"encoding/json"
	"time"
)

// QuestionnaireRecord is the latest self-assessment submitted by a user.
// Timestamp is whatever the client sent and is returned untouched.
type QuestionnaireRecord struct {
	UserId    string
	Timestamp json.RawMessage
	Responses map[string]float64
	UpdatedAt time.Time
}
