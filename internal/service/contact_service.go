package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const maxMessageLen = 10000

// Enqueuer hands a persisted contact message to the delivery worker.
// Implemented by mail.Dispatcher.
type Enqueuer interface {
	Enqueue(id uint) bool
}

// ContactService accepts contact-form submissions. Submissions are
// persisted first and delivered asynchronously, so the request returns
// as soon as the message is queued.
type ContactService struct {
	contactRepo repository.ContactRepository
	queue       Enqueuer
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func NewContactService(contactRepo repository.ContactRepository, queue Enqueuer) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		queue:       queue,
	}
}

func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*models.ContactMessage, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, models.NewValidationError("Message is required")
	}
	if len(in.Message) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 10000 characters)")
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: in.Message,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	// A full queue is fine: the row is pending and the delivery sweep
	// will pick it up.
	s.queue.Enqueue(msg.ID)

	return msg, nil
}

// Status returns the current delivery state of a submission.
func (s *ContactService) Status(ctx context.Context, id uint) (*models.ContactMessage, error) {
	return s.contactRepo.GetByID(ctx, id)
}
