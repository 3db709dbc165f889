package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mindly-be/internal/dto"
	"mindly-be/internal/entity"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/repository/contract"
	"mindly-be/pkg/events"
	"mindly-be/pkg/questionnaire"
)

type IQuestionnaireService interface {
	Save(ctx context.Context, request *dto.SaveQuestionnaireRequest) error
	Latest(ctx context.Context, userId string) (*dto.QuestionnaireResponse, error)
	Summary(ctx context.Context, userId string) (*dto.QuestionnaireSummaryResponse, error)
	// Context returns the concern summary, or "" when the user never submitted.
	Context(ctx context.Context, userId string) (string, error)
}

type questionnaireService struct {
	repo      contract.QuestionnaireRepository
	publisher events.Publisher
	logger    logger.ILogger
}

func NewQuestionnaireService(repo contract.QuestionnaireRepository, publisher events.Publisher, log logger.ILogger) IQuestionnaireService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &questionnaireService{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

func (s *questionnaireService) Save(ctx context.Context, request *dto.SaveQuestionnaireRequest) error {
	userId := request.UserId.String()
	if userId == "" {
		return ErrUserIDRequired
	}

	timestamp := request.Timestamp
	if len(timestamp) == 0 {
		timestamp = json.RawMessage("null")
	}

	record := &entity.QuestionnaireRecord{
		UserId:    userId,
		Timestamp: timestamp,
		Responses: request.Responses,
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("save questionnaire for %s: %w", userId, err)
	}

	evt := events.New(events.QuestionnaireSubmitted, map[string]interface{}{
		"user_id": userId,
		"items":   len(record.Responses),
	})
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("QuestionnaireService", "Failed to publish QUESTIONNAIRE_SUBMITTED event", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *questionnaireService) find(ctx context.Context, userId string) (*entity.QuestionnaireRecord, error) {
	userId = dto.FlexibleID(userId).String()
	if userId == "" {
		return nil, ErrUserIDRequired
	}
	record, err := s.repo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("load questionnaire for %s: %w", userId, err)
	}
	if record == nil {
		return nil, ErrQuestionnaireNotFound
	}
	return record, nil
}

func (s *questionnaireService) Latest(ctx context.Context, userId string) (*dto.QuestionnaireResponse, error) {
	record, err := s.find(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionnaireResponse{
		UserId:    record.UserId,
		Timestamp: record.Timestamp,
		Responses: record.Responses,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *questionnaireService) Summary(ctx context.Context, userId string) (*dto.QuestionnaireSummaryResponse, error) {
	record, err := s.find(ctx, userId)
	if err != nil {
		return nil, err
	}

	breakdown := questionnaire.Breakdown(record.Responses)
	categories := make([]dto.CategoryScore, len(breakdown))
	for i, c := range breakdown {
		categories[i] = dto.CategoryScore{
			Category: c.Rule.Category.String(),
			Mean:     c.Mean,
			Items:    c.Items,
			Included: c.Included,
			Label:    c.Label,
		}
	}

	return &dto.QuestionnaireSummaryResponse{
		Context:    questionnaire.Summarize(record.Responses),
		Categories: categories,
	}, nil
}

func (s *questionnaireService) Context(ctx context.Context, userId string) (string, error) {
	userId = dto.FlexibleID(userId).String()
	record, err := s.repo.FindByUserId(ctx, userId)
	if err != nil {
		return "", fmt.Errorf("load questionnaire for %s: %w", userId, err)
	}
	if record == nil {
		return "", nil
	}
	return questionnaire.Summarize(record.Responses), nil
}
