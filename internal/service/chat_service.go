package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindly-be/internal/dto"
	"mindly-be/internal/entity"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/repository/contract"
	"mindly-be/pkg/events"
	"mindly-be/pkg/wellness"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ReplyGenerator writes the companion's answer to a user message.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, message string, history []string, assessmentContext string) (string, error)
}

// MetricsExtractor rates a user message on the six wellbeing indicators.
type MetricsExtractor interface {
	ExtractMetrics(ctx context.Context, message string, history []string) (wellness.Metrics, error)
}

// AssessmentContextProvider supplies the questionnaire summary for a user.
type AssessmentContextProvider interface {
	Context(ctx context.Context, userId string) (string, error)
}

type IChatService interface {
	HandleTurn(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetMetrics(ctx context.Context, sessionId string) (*dto.MetricsResponse, error)
}

type ChatOptions struct {
	HistoryWindow  int
	Timeout        time.Duration
	AlertThreshold float64
}

type chatService struct {
	sessions   contract.SessionRepository
	assessment AssessmentContextProvider
	replies    ReplyGenerator
	extractor  MetricsExtractor
	publisher  events.Publisher
	logger     logger.ILogger
	tracer     trace.Tracer
	opts       ChatOptions
}

func NewChatService(
	sessions contract.SessionRepository,
	assessment AssessmentContextProvider,
	replies ReplyGenerator,
	extractor MetricsExtractor,
	publisher events.Publisher,
	log logger.ILogger,
	opts ChatOptions,
) IChatService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = entity.DefaultHistoryWindow
	}
	return &chatService{
		sessions:   sessions,
		assessment: assessment,
		replies:    replies,
		extractor:  extractor,
		publisher:  publisher,
		logger:     log,
		tracer:     otel.Tracer("mindly-be/chat"),
		opts:       opts,
	}
}

func (s *chatService) HandleTurn(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := request.Message
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	sessionId := sessionIdOrDefault(request.SessionId)
	userId := request.UserId.String()

	ctx, span := s.tracer.Start(ctx, "ChatService.HandleTurn", trace.WithAttributes(
		attribute.String("session.id", sessionId),
		attribute.Bool("user.present", userId != ""),
	))
	defer span.End()

	session, err := s.sessions.GetOrCreate(ctx, sessionId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load session %s: %w", sessionId, err)
	}
	window := session.RecentHistory(s.opts.HistoryWindow)
	assessment := s.assessmentContext(ctx, userId)

	var (
		metrics wellness.Metrics
		reply   string
		g       errgroup.Group
	)
	g.Go(func() error {
		metrics = s.extractMetrics(ctx, sessionId, message, window)
		return nil
	})
	g.Go(func() error {
		reply = s.generateReply(ctx, sessionId, message, window, assessment)
		return nil
	})
	_ = g.Wait()

	entry, err := s.sessions.AppendTurn(ctx, sessionId, message, reply, metrics)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("append turn to %s: %w", sessionId, err)
	}

	s.publishTurn(ctx, sessionId, userId, entry)

	return &dto.ChatResponse{
		Response: reply,
		Metrics:  metrics,
	}, nil
}

func (s *chatService) GetMetrics(ctx context.Context, sessionId string) (*dto.MetricsResponse, error) {
	sessionId = sessionIdOrDefault(sessionId)

	session, found, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionId, err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	history := make([]dto.MetricsHistoryItem, len(session.MetricsLog))
	for i, e := range session.MetricsLog {
		history[i] = dto.MetricsHistoryItem{
			Timestamp: e.Index,
			Metrics:   e.Metrics,
			Message:   e.Message,
		}
	}

	return &dto.MetricsResponse{
		Latest:  session.LatestMetrics(),
		Average: session.AverageMetrics(),
		History: history,
	}, nil
}

func (s *chatService) assessmentContext(ctx context.Context, userId string) string {
	if userId == "" || s.assessment == nil {
		return ""
	}
	summary, err := s.assessment.Context(ctx, userId)
	if err != nil {
		s.logger.Warn("ChatService", "Questionnaire context unavailable", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return ""
	}
	return summary
}

func (s *chatService) extractMetrics(ctx context.Context, sessionId, message string, window []string) wellness.Metrics {
	ctx, span := s.tracer.Start(ctx, "ChatService.ExtractMetrics")
	defer span.End()

	metrics, err := guard(ctx, s.opts.Timeout, func(ctx context.Context) (wellness.Metrics, error) {
		return s.extractor.ExtractMetrics(ctx, message, window)
	})
	if err == nil {
		metrics, err = wellness.Normalize(metrics)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("ChatService", "Metrics extraction failed, using neutral scores", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return wellness.Neutral()
	}
	return metrics
}

func (s *chatService) generateReply(ctx context.Context, sessionId, message string, window []string, assessment string) string {
	ctx, span := s.tracer.Start(ctx, "ChatService.GenerateReply")
	defer span.End()

	reply, err := guard(ctx, s.opts.Timeout, func(ctx context.Context) (string, error) {
		return s.replies.GenerateReply(ctx, message, window, assessment)
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Error("ChatService", "Reply generation failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return "[Error] " + err.Error()
	}
	return reply
}

func (s *chatService) publishTurn(ctx context.Context, sessionId, userId string, entry entity.MetricsEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	data := map[string]interface{}{
		"session_id": sessionId,
		"user_id":    userId,
		"index":      entry.Index,
		"metrics":    map[string]float64(entry.Metrics),
	}
	if err := s.publisher.Publish(ctx, events.New(events.ChatTurnCompleted, data)); err != nil {
		s.logger.Warn("ChatService", "Failed to publish CHAT_TURN_COMPLETED event", map[string]interface{}{"error": err.Error()})
	}

	if s.opts.AlertThreshold <= 0 {
		return
	}
	elevated := entry.Metrics.Above(s.opts.AlertThreshold)
	if len(elevated) == 0 {
		return
	}
	alert := map[string]interface{}{
		"session_id": sessionId,
		"user_id":    userId,
		"elevated":   elevated,
		"metrics":    map[string]float64(entry.Metrics),
	}
	if err := s.publisher.Publish(ctx, events.New(events.WellnessAlert, alert)); err != nil {
		s.logger.Warn("ChatService", "Failed to publish WELLNESS_ALERT event", map[string]interface{}{"error": err.Error()})
	}
}

// guard runs a collaborator call under an optional timeout and turns a panic into an error.
func guard[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (T, error)) (result T, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("collaborator panic: %v", r)
		}
	}()
	return call(ctx)
}

func sessionIdOrDefault(id string) string {
	if strings.TrimSpace(id) == "" {
		return entity.DefaultSessionID
	}
	return id
}
