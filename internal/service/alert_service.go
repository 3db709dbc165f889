package service

import (
	"context"
	"fmt"

	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/pkg/mailer"
	"mindly-be/pkg/events"
	"mindly-be/pkg/nats"
)

// EventSubscriber is satisfied by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler nats.EventHandler) error
}

type IAlertService interface {
	Start(ctx context.Context) error
	Handle(ctx context.Context, event events.Event) error
}

type alertService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

// NewAlertService forwards WELLNESS_ALERT events to the support inbox.
func NewAlertService(subscriber EventSubscriber, mailer mailer.IEmailService, log logger.ILogger) IAlertService {
	return &alertService{subscriber: subscriber, mailer: mailer, logger: log}
}

func (s *alertService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, events.WellnessAlert, "mindly-alert-mailer", s.Handle); err != nil {
		s.logger.Error("AlertService", "Failed to start alert subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("AlertService", "Alert service started, listening to "+nats.Subject(events.WellnessAlert), nil)
	return nil
}

func (s *alertService) Handle(ctx context.Context, event events.Event) error {
	data := event.Payload()
	sessionId, _ := data["session_id"].(string)

	metrics := map[string]float64{}
	if raw, ok := data["metrics"].(map[string]interface{}); ok {
		for k, v := range raw {
			if f, ok := v.(float64); ok {
				metrics[k] = f
			}
		}
	}

	var elevated []string
	if raw, ok := data["elevated"].([]interface{}); ok {
		for _, v := range raw {
			if k, ok := v.(string); ok {
				elevated = append(elevated, k)
			}
		}
	}

	s.logger.Warn("AlertService", fmt.Sprintf("Wellness alert for session %s", sessionId), map[string]interface{}{
		"elevated": elevated,
	})

	return s.mailer.SendWellnessAlert(sessionId, metrics, elevated)
}
