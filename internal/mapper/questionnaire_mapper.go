package mapper

import (
	"encoding/json"

	"mindly-be/internal/entity"
	"mindly-be/internal/model"

	"gorm.io/datatypes"
)

type QuestionnaireMapper struct{}

func NewQuestionnaireMapper() *QuestionnaireMapper {
	return &QuestionnaireMapper{}
}

func (m *QuestionnaireMapper) ToEntity(r *model.QuestionnaireResponse) *entity.QuestionnaireRecord {
	if r == nil {
		return nil
	}
	responses := r.Responses.Data()
	if responses == nil {
		responses = map[string]float64{}
	}
	return &entity.QuestionnaireRecord{
		UserId:    r.UserId,
		Timestamp: json.RawMessage(r.Timestamp),
		Responses: responses,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *QuestionnaireMapper) ToModel(e *entity.QuestionnaireRecord) *model.QuestionnaireResponse {
	if e == nil {
		return nil
	}
	timestamp := datatypes.JSON(e.Timestamp)
	if len(timestamp) == 0 {
		timestamp = datatypes.JSON("null")
	}
	return &model.QuestionnaireResponse{
		UserId:    e.UserId,
		Timestamp: timestamp,
		Responses: datatypes.NewJSONType(e.Responses),
		UpdatedAt: e.UpdatedAt,
	}
}
