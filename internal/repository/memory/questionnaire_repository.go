package memory

import (
	"context"
	"encoding/json"
	"time"

	"mindly-be/internal/entity"
	"mindly-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// QuestionnaireRepository keeps the latest record per user in memory.
// go-cache serialises writes and allows concurrent reads.
type QuestionnaireRepository struct {
	cache *cache.Cache
}

var _ contract.QuestionnaireRepository = &QuestionnaireRepository{}

func NewQuestionnaireRepository() *QuestionnaireRepository {
	return &QuestionnaireRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *QuestionnaireRepository) Save(ctx context.Context, record *entity.QuestionnaireRecord) error {
	stored := cloneRecord(record)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}
	r.cache.Set(record.UserId, stored, cache.NoExpiration)
	return nil
}

func (r *QuestionnaireRepository) FindByUserId(ctx context.Context, userId string) (*entity.QuestionnaireRecord, error) {
	x, found := r.cache.Get(userId)
	if !found {
		return nil, nil
	}
	return cloneRecord(x.(*entity.QuestionnaireRecord)), nil
}

func cloneRecord(r *entity.QuestionnaireRecord) *entity.QuestionnaireRecord {
	responses := make(map[string]float64, len(r.Responses))
	for k, v := range r.Responses {
		responses[k] = v
	}
	return &entity.QuestionnaireRecord{
		UserId:    r.UserId,
		Timestamp: append(json.RawMessage(nil), r.Timestamp...),
		Responses: responses,
		UpdatedAt: r.UpdatedAt,
	}
}
