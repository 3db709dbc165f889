package memory

import (
	"context"
	"encoding/json"
	"testing"

	"mindly-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionnaireRepository()

	got, err := repo.FindByUserId(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	first := &entity.QuestionnaireRecord{
		UserId:    "u1",
		Timestamp: json.RawMessage(`"2025-10-01T10:00:00.000Z"`),
		Responses: map[string]float64{"phq1": 2, "ghq1": 1},
	}
	require.NoError(t, repo.Save(ctx, first))

	got, err = repo.FindByUserId(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `"2025-10-01T10:00:00.000Z"`, string(got.Timestamp))
	assert.Equal(t, first.Responses, got.Responses)
	assert.False(t, got.UpdatedAt.IsZero())

	// last write wins, wholesale
	second := &entity.QuestionnaireRecord{
		UserId:    "u1",
		Timestamp: json.RawMessage(`1730000000`),
		Responses: map[string]float64{"acad1": 4},
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err = repo.FindByUserId(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, `1730000000`, string(got.Timestamp))
	assert.Equal(t, map[string]float64{"acad1": 4}, got.Responses)

	// stored copies are isolated from callers
	got.Responses["acad1"] = 0
	again, _ := repo.FindByUserId(ctx, "u1")
	assert.Equal(t, 4.0, again.Responses["acad1"])
}
