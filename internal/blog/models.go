package blog

import "time"

// Blog is an article owned by an author resolved through introspection.
// user_id references the auth service's users table logically, not by
// foreign key; the services own separate schemas.
type Blog struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary,omitempty"`
	UserID      int64     `json:"user_id"`
	IsPublished bool      `json:"is_published"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
