package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	fixed := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return fixed }

	err := svc.Append(context.Background(), Event{
		Type:     EventTypeLoginFailed,
		Username: "alice",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID == "" {
		t.Fatalf("expected generated id")
	}
	if !events[0].CreatedAt.Equal(fixed) {
		t.Fatalf("expected clock timestamp, got %v", events[0].CreatedAt)
	}
}

func TestAppendRejectsMissingType(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.Append(context.Background(), Event{Username: "alice"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestLogLoginOutcomes(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.LogLogin(ctx, "alice", "10.0.0.1", 7, true); err != nil {
		t.Fatalf("log success: %v", err)
	}
	if err := svc.LogLogin(ctx, "mallory", "10.0.0.2", 0, false); err != nil {
		t.Fatalf("log failure: %v", err)
	}

	events := repo.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventTypeLoginSucceeded || events[0].ActorUserID != 7 {
		t.Fatalf("unexpected success event: %+v", events[0])
	}
	if events[1].Type != EventTypeLoginFailed || events[1].Username != "mallory" {
		t.Fatalf("unexpected failure event: %+v", events[1])
	}
}

func TestNilServiceRefusesQuietly(t *testing.T) {
	var svc *Service
	if err := svc.Append(context.Background(), Event{Type: EventTypeTokenRefreshed}); err == nil {
		t.Fatalf("expected error on nil service")
	}
}
