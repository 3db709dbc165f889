package service

import (
	"context"
	"fmt"

	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/pkg/mailer"
)

type IContactService interface {
	Submit(ctx context.Context, request *dto.ContactRequest) error
}

type contactService struct {
	mailer mailer.IEmailService
	logger logger.ILogger
}

func NewContactService(mailer mailer.IEmailService, log logger.ILogger) IContactService {
	return &contactService{mailer: mailer, logger: log}
}

func (s *contactService) Submit(ctx context.Context, request *dto.ContactRequest) error {
	if err := s.mailer.SendContactMessage(request.Name, request.Email, request.Message); err != nil {
		s.logger.Error("ContactService", "Failed to deliver contact message", map[string]interface{}{
			"email": request.Email,
			"error": err.Error(),
		})
		return fmt.Errorf("deliver contact message: %w", err)
	}
	s.logger.Info("ContactService", "Contact message delivered", map[string]interface{}{"email": request.Email})
	return nil
}
