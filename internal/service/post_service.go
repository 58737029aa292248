// Package service contains the application's business logic, sitting
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const (
	maxTitleLen    = 300
	maxSubtitleLen = 300
	maxBodyLen     = 50000
)

// PostService implements post CRUD. Authorization is enforced at the
// route layer: every mutating operation here is only reachable through
// the admin guard, which runs before any persistence call.
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type UpdatePostInput struct {
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

func validatePostFields(title, subtitle, body, imageURL string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(subtitle) > maxSubtitleLen {
		return models.NewValidationError("Subtitle too long (max 300 characters)")
	}
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("Body too long (max 50000 characters)")
	}
	if err := validation.ValidateImageURL(imageURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       strings.TrimSpace(in.Title),
		Subtitle:    strings.TrimSpace(in.Subtitle),
		Body:        in.Body,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		CreatedDate: s.now().Format(models.DateLayout),
		UserID:      in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost overwrites title, subtitle, body, and image URL together;
// the write either fully applies or fully fails.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Subtitle = strings.TrimSpace(in.Subtitle)
	post.Body = in.Body
	post.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}
