package audit

import (
	"context"
	"database/sql"
)

// NOTE: assumes an INSERT-only audit_events table (see migrations/).
// No Update/Delete statements belong in this file.

type sqlRepository struct {
	db *sql.DB
}

func NewSQLRepo(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (id, type, actor_user_id, username, ip_address, message, created_at)
VALUES ($1, $2, NULLIF($3, 0), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		string(e.Type),
		e.ActorUserID,
		e.Username,
		e.IPAddress,
		e.Message,
		e.CreatedAt,
	)
	return err
}
