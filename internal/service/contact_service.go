package service

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// contactService implements ContactService.
type contactService struct {
	contactRepo repository.ContactRepository
	logger      zerolog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactRepository, logger zerolog.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		logger:      logger.With().Str("service", "contact").Logger(),
	}
}

// Submit validates and stores a contact message.
func (s *contactService) Submit(ctx context.Context, contact *model.Contact) error {
	if contact == nil {
		return model.NewDomainError(model.ErrCodeInvalidRequest, "Contact message is required")
	}

	if strings.TrimSpace(contact.Name) == "" {
		return model.NewDomainError(model.ErrCodeInvalidRequest, "Name is required")
	}

	if strings.TrimSpace(contact.Email) == "" || !strings.Contains(contact.Email, "@") {
		return model.NewDomainError(model.ErrCodeInvalidRequest, "A valid email is required")
	}

	if strings.TrimSpace(contact.Message) == "" {
		return model.NewDomainError(model.ErrCodeInvalidRequest, "Message is required")
	}

	if err := s.contactRepo.Insert(ctx, contact); err != nil {
		s.logger.Error().Err(err).Msg("failed to store contact message")
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	s.logger.Info().
		Str("email", contact.Email).
		Msg("contact message submitted")

	return nil
}
