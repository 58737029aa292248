package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, detail string) error
	ListPending(ctx context.Context) ([]*models.ContactMessage, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a new ContactRepository implementation.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.Status = models.ContactPending
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Contact message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *contactRepository) MarkSent(ctx context.Context, id uint) error {
	return r.setStatus(ctx, id, models.ContactSent, "")
}

func (r *contactRepository) MarkFailed(ctx context.Context, id uint, detail string) error {
	return r.setStatus(ctx, id, models.ContactFailed, detail)
}

func (r *contactRepository) setStatus(ctx context.Context, id uint, status, detail string) error {
	res := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "detail": detail})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Contact message", id)
	}
	return nil
}

// ListPending returns messages still awaiting delivery, oldest first.
// Used at startup to resume work interrupted by a restart.
func (r *contactRepository) ListPending(ctx context.Context) ([]*models.ContactMessage, error) {
	var msgs []*models.ContactMessage
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.ContactPending).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}
