package contract

import (
	"context"

	"mindly-be/internal/entity"
)

type QuestionnaireRepository interface {
	// Save replaces any existing record of record.UserId.
	Save(ctx context.Context, record *entity.QuestionnaireRecord) error
	// FindByUserId returns nil, nil when the user has no record.
	FindByUserId(ctx context.Context, userId string) (*entity.QuestionnaireRecord, error)
}
