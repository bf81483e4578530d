package blog

import (
	"context"
	"errors"
	"testing"
)

func newBlogService() *Service {
	return NewService(NewMemoryRepo())
}

func TestCreateAndGetCountsViews(t *testing.T) {
	svc := newBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateParams{
		Title:       "Getting started with Go services",
		Content:     "A long enough body describing how to structure a small Go web service.",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Views != 0 {
		t.Fatalf("new blog should start with zero views, got %d", created.Views)
	}

	first, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.Views != 1 || second.Views != 2 {
		t.Fatalf("expected views 1 then 2, got %d then %d", first.Views, second.Views)
	}
}

func TestGetUnknownBlog(t *testing.T) {
	svc := newBlogService()
	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersUnpublished(t *testing.T) {
	svc := newBlogService()
	ctx := context.Background()

	mustCreate := func(published bool) {
		t.Helper()
		_, err := svc.Create(ctx, 1, CreateParams{
			Title:       "A title long enough",
			Content:     "Body content that is comfortably past the minimum length requirement here.",
			IsPublished: published,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mustCreate(true)
	mustCreate(false)
	mustCreate(true)

	published, err := svc.List(ctx, 0, 10, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published blogs, got %d", len(published))
	}

	all, err := svc.List(ctx, 0, 10, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 blogs, got %d", len(all))
	}
}

func TestListPagination(t *testing.T) {
	svc := newBlogService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, 1, CreateParams{
			Title:       "A title long enough",
			Content:     "Body content that is comfortably past the minimum length requirement here.",
			IsPublished: true,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := svc.List(ctx, 2, 2, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
	if page[0].ID != 3 || page[1].ID != 4 {
		t.Fatalf("unexpected page ids: %d, %d", page[0].ID, page[1].ID)
	}

	empty, err := svc.List(ctx, 50, 10, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	svc := newBlogService()
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, CreateParams{
		Title:       "Original title here",
		Content:     "Body content that is comfortably past the minimum length requirement here.",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTitle := "Updated title here"
	if _, err := svc.Update(ctx, b.ID, 2, UpdateParams{Title: &newTitle}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for foreign update, got %v", err)
	}

	updated, err := svc.Update(ctx, b.ID, 1, UpdateParams{Title: &newTitle})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Content != b.Content {
		t.Fatalf("untouched field changed")
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc := newBlogService()
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, CreateParams{
		Title:       "A title long enough",
		Content:     "Body content that is comfortably past the minimum length requirement here.",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, b.ID, 2); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(ctx, b.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestModerationDeleteBypassesOwnership(t *testing.T) {
	svc := newBlogService()
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, CreateParams{
		Title:       "A title long enough",
		Content:     "Body content that is comfortably past the minimum length requirement here.",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.ModerationDelete(ctx, b.ID); err != nil {
		t.Fatalf("moderation delete: %v", err)
	}
}
