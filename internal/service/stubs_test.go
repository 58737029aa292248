package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

// Stub repositories with overridable behavior per test. Unset funcs
// fall back to benign defaults so tests only wire what they care about.

type stubUserRepo struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error

	// created backs the default bootstrap-role behavior: the first
	// stored user becomes the admin, matching the real repository.
	created []*models.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername != nil {
		return s.getByUsername(ctx, username)
	}
	return nil, nil
}

func (s *stubUserRepo) CreateWithBootstrapRole(ctx context.Context, user *models.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	user.Role = models.RoleReader
	if len(s.created) == 0 {
		user.Role = models.RoleAdmin
	}
	s.created = append(s.created, user)
	user.ID = uint(len(s.created))
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update != nil {
		return s.update(ctx, user)
	}
	return nil
}

type stubPostRepo struct {
	create  func(ctx context.Context, post *models.Post) error
	getByID func(ctx context.Context, id uint) (*models.Post, error)
	list    func(ctx context.Context, limit, offset int) ([]*models.Post, error)
	update  func(ctx context.Context, post *models.Post) error
	delete  func(ctx context.Context, id uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.create != nil {
		return s.create(ctx, post)
	}
	post.ID = 1
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return &models.Post{ID: id, Title: "stub"}, nil
}

func (s *stubPostRepo) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if s.list != nil {
		return s.list(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.update != nil {
		return s.update(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

type stubCommentRepo struct {
	create     func(ctx context.Context, comment *models.Comment) error
	getByID    func(ctx context.Context, id uint) (*models.Comment, error)
	listByPost func(ctx context.Context, postID uint) ([]*models.Comment, error)
	delete     func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.create != nil {
		return s.create(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return &models.Comment{ID: id, Body: "stub"}, nil
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPost != nil {
		return s.listByPost(ctx, postID)
	}
	return nil, nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

type stubContactRepo struct {
	create      func(ctx context.Context, msg *models.ContactMessage) error
	getByID     func(ctx context.Context, id uint) (*models.ContactMessage, error)
	markSent    func(ctx context.Context, id uint) error
	markFailed  func(ctx context.Context, id uint, detail string) error
	listPending func(ctx context.Context) ([]*models.ContactMessage, error)
}

func (s *stubContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	if s.create != nil {
		return s.create(ctx, msg)
	}
	msg.ID = 1
	msg.Status = models.ContactPending
	return nil
}

func (s *stubContactRepo) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Contact message", id)
}

func (s *stubContactRepo) MarkSent(ctx context.Context, id uint) error {
	if s.markSent != nil {
		return s.markSent(ctx, id)
	}
	return nil
}

func (s *stubContactRepo) MarkFailed(ctx context.Context, id uint, detail string) error {
	if s.markFailed != nil {
		return s.markFailed(ctx, id, detail)
	}
	return nil
}

func (s *stubContactRepo) ListPending(ctx context.Context) ([]*models.ContactMessage, error) {
	if s.listPending != nil {
		return s.listPending(ctx)
	}
	return nil, nil
}

type stubQueue struct {
	enqueued []uint
	full     bool
}

func (s *stubQueue) Enqueue(id uint) bool {
	s.enqueued = append(s.enqueued, id)
	return !s.full
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, code, appErr.Code)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

var errBoom = errors.New("boom")
