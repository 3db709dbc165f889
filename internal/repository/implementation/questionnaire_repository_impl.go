package implementation

import (
	"context"
	"errors"

	"mindly-be/internal/entity"
	"mindly-be/internal/mapper"
	"mindly-be/internal/model"
	"mindly-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionnaireRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionnaireMapper
}

func NewQuestionnaireRepository(db *gorm.DB) contract.QuestionnaireRepository {
	return &QuestionnaireRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionnaireMapper(),
	}
}

// Save upserts on user_id; the row lock taken by the upsert serialises writers of one user.
func (r *QuestionnaireRepositoryImpl) Save(ctx context.Context, record *entity.QuestionnaireRecord) error {
	m := r.mapper.ToModel(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"timestamp", "responses", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	record.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *QuestionnaireRepositoryImpl) FindByUserId(ctx context.Context, userId string) (*entity.QuestionnaireRecord, error) {
	var m model.QuestionnaireResponse
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
