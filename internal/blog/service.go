package blog

import (
	"context"
	"errors"
)

// Service implements blog operations with ownership checks.
// Ownership rule: only the author may update or delete an article; moderation
// deletes bypass this and are role-gated at the route level.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var ErrNotOwner = errors.New("blog: not the author")

type CreateParams struct {
	Title       string
	Content     string
	Summary     string
	IsPublished bool
}

func (s *Service) Create(ctx context.Context, userID int64, p CreateParams) (Blog, error) {
	b := Blog{
		Title:       p.Title,
		Content:     p.Content,
		Summary:     p.Summary,
		UserID:      userID,
		IsPublished: p.IsPublished,
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Blog{}, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, skip, limit int, publishedOnly bool) ([]Blog, error) {
	skip, limit = clampPage(skip, limit)
	return s.repo.List(ctx, skip, limit, publishedOnly)
}

func (s *Service) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]Blog, error) {
	skip, limit = clampPage(skip, limit)
	return s.repo.ListByUser(ctx, userID, skip, limit)
}

// Get returns one article and counts the read.
func (s *Service) Get(ctx context.Context, id int64) (Blog, error) {
	return s.repo.IncrementViews(ctx, id)
}

type UpdateParams struct {
	Title       *string
	Content     *string
	Summary     *string
	IsPublished *bool
}

func (s *Service) Update(ctx context.Context, id, userID int64, p UpdateParams) (Blog, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Blog{}, err
	}
	if b.UserID != userID {
		return Blog{}, ErrNotOwner
	}

	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Summary != nil {
		b.Summary = *p.Summary
	}
	if p.IsPublished != nil {
		b.IsPublished = *p.IsPublished
	}

	if err := s.repo.Update(ctx, &b); err != nil {
		return Blog{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

// ModerationDelete removes any article regardless of author.
func (s *Service) ModerationDelete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return skip, limit
}
