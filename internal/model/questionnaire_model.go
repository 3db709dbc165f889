package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionnaireResponse struct {
	UserId    string                                 `gorm:"type:text;primaryKey"`
	Timestamp datatypes.JSON                         `gorm:"type:jsonb"` // opaque client value
	Responses datatypes.JSONType[map[string]float64] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time                              `gorm:"autoCreateTime"`
	UpdatedAt time.Time                              `gorm:"autoUpdateTime"`
}

func (QuestionnaireResponse) TableName() string {
	return "questionnaire_responses"
}
