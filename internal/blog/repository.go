package blog

import (
	"context"
	"database/sql"
	"errors"
)

// NOTE: This repository assumes a blogs table exists (see migrations/).

var ErrNotFound = errors.New("blog: not found")

type Repository interface {
	Create(ctx context.Context, b *Blog) error
	FindByID(ctx context.Context, id int64) (Blog, error)
	// IncrementViews bumps the view counter and returns the updated row.
	IncrementViews(ctx context.Context, id int64) (Blog, error)
	List(ctx context.Context, skip, limit int, publishedOnly bool) ([]Blog, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]Blog, error)
	Update(ctx context.Context, b *Blog) error
	Delete(ctx context.Context, id int64) error
}

type sqlRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

const blogColumns = `id, title, content, summary, user_id, is_published, views, created_at, updated_at`

func scanBlog(row interface{ Scan(dest ...any) error }) (Blog, error) {
	var (
		b       Blog
		summary sql.NullString
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Content,
		&summary,
		&b.UserID,
		&b.IsPublished,
		&b.Views,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Blog{}, ErrNotFound
		}
		return Blog{}, err
	}
	b.Summary = summary.String
	return b, nil
}

func (r *sqlRepository) Create(ctx context.Context, b *Blog) error {
	const q = `
INSERT INTO blogs (title, content, summary, user_id, is_published)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
RETURNING id, views, created_at, updated_at
`
	return r.db.QueryRowContext(ctx, q,
		b.Title,
		b.Content,
		b.Summary,
		b.UserID,
		b.IsPublished,
	).Scan(&b.ID, &b.Views, &b.CreatedAt, &b.UpdatedAt)
}

func (r *sqlRepository) FindByID(ctx context.Context, id int64) (Blog, error) {
	const q = `
SELECT ` + blogColumns + `
FROM blogs
WHERE id = $1
`
	return scanBlog(r.db.QueryRowContext(ctx, q, id))
}

func (r *sqlRepository) IncrementViews(ctx context.Context, id int64) (Blog, error) {
	const q = `
UPDATE blogs
SET views = views + 1
WHERE id = $1
RETURNING ` + blogColumns + `
`
	return scanBlog(r.db.QueryRowContext(ctx, q, id))
}

func (r *sqlRepository) List(ctx context.Context, skip, limit int, publishedOnly bool) ([]Blog, error) {
	const q = `
SELECT ` + blogColumns + `
FROM blogs
WHERE ($3 = FALSE OR is_published = TRUE)
ORDER BY id
OFFSET $1 LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, q, skip, limit, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlogs(rows)
}

func (r *sqlRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]Blog, error) {
	const q = `
SELECT ` + blogColumns + `
FROM blogs
WHERE user_id = $1 AND is_published = TRUE
ORDER BY id
OFFSET $2 LIMIT $3
`
	rows, err := r.db.QueryContext(ctx, q, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBlogs(rows)
}

func (r *sqlRepository) Update(ctx context.Context, b *Blog) error {
	const q = `
UPDATE blogs
SET title = $2, content = $3, summary = NULLIF($4, ''), is_published = $5, updated_at = NOW()
WHERE id = $1
RETURNING updated_at
`
	err := r.db.QueryRowContext(ctx, q,
		b.ID,
		b.Title,
		b.Content,
		b.Summary,
		b.IsPublished,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM blogs WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectBlogs(rows *sql.Rows) ([]Blog, error) {
	var out []Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
