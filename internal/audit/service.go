package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records authentication audit information.
//
// Callers should treat audit logging as best-effort: a failed append must not
// fail the login or registration it describes.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s == nil || s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogLogin records a login attempt outcome.
func (s *Service) LogLogin(ctx context.Context, username, ip string, userID int64, ok bool) error {
	typ := EventTypeLoginSucceeded
	msg := "login succeeded"
	if !ok {
		typ = EventTypeLoginFailed
		msg = "login failed"
	}
	return s.Append(ctx, Event{
		Type:        typ,
		ActorUserID: userID,
		Username:    username,
		IPAddress:   ip,
		Message:     msg,
	})
}

// LogRegistration records a successful registration.
func (s *Service) LogRegistration(ctx context.Context, userID int64, username, ip string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeUserRegistered,
		ActorUserID: userID,
		Username:    username,
		IPAddress:   ip,
		Message:     "user registered",
	})
}

// LogRefresh records a successful token refresh.
func (s *Service) LogRefresh(ctx context.Context, ip string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeTokenRefreshed,
		IPAddress: ip,
		Message:   "token pair refreshed",
	})
}
