package qna

import (
	"context"
	"database/sql"
	"errors"
)

// NOTE: This repository assumes the following tables exist (see migrations/):
// - questions
// - answers
// - votes (UNIQUE (question_id, user_id))

var (
	ErrQuestionNotFound = errors.New("qna: question not found")
	ErrVoteNotFound     = errors.New("qna: vote not found")
)

type Repository interface {
	CreateQuestion(ctx context.Context, q *Question) error
	FindQuestion(ctx context.Context, id int64) (Question, error)
	// IncrementQuestionViews bumps the view counter and returns the updated row.
	IncrementQuestionViews(ctx context.Context, id int64) (Question, error)
	ListQuestions(ctx context.Context, skip, limit int) ([]Question, error)
	UpdateQuestion(ctx context.Context, q *Question) error
	DeleteQuestion(ctx context.Context, id int64) error

	CreateAnswer(ctx context.Context, a *Answer) error
	ListAnswersByQuestion(ctx context.Context, questionID int64) ([]Answer, error)

	// UpsertVote inserts a vote or changes the type of an existing one.
	UpsertVote(ctx context.Context, v *Vote) error
	FindVote(ctx context.Context, id int64) (Vote, error)
	DeleteVote(ctx context.Context, id int64) error
	VoteStats(ctx context.Context, questionID int64) (VoteStats, error)
}

type sqlRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

// questionColumns includes the read-time aggregates.
const questionColumns = `
q.id, q.title, q.content, q.user_id, q.views, q.created_at, q.updated_at,
(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id),
(SELECT COUNT(*) FROM votes v WHERE v.question_id = q.id)`

func scanQuestion(row interface{ Scan(dest ...any) error }) (Question, error) {
	var q Question
	err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Content,
		&q.UserID,
		&q.Views,
		&q.CreatedAt,
		&q.UpdatedAt,
		&q.AnswerCount,
		&q.VoteCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	return q, nil
}

func (r *sqlRepository) CreateQuestion(ctx context.Context, q *Question) error {
	const stmt = `
INSERT INTO questions (title, content, user_id)
VALUES ($1, $2, $3)
RETURNING id, views, created_at, updated_at
`
	return r.db.QueryRowContext(ctx, stmt, q.Title, q.Content, q.UserID).
		Scan(&q.ID, &q.Views, &q.CreatedAt, &q.UpdatedAt)
}

func (r *sqlRepository) FindQuestion(ctx context.Context, id int64) (Question, error) {
	const stmt = `
SELECT ` + questionColumns + `
FROM questions q
WHERE q.id = $1
`
	return scanQuestion(r.db.QueryRowContext(ctx, stmt, id))
}

func (r *sqlRepository) IncrementQuestionViews(ctx context.Context, id int64) (Question, error) {
	const stmt = `
UPDATE questions q
SET views = views + 1
WHERE q.id = $1
RETURNING ` + questionColumns + `
`
	return scanQuestion(r.db.QueryRowContext(ctx, stmt, id))
}

func (r *sqlRepository) ListQuestions(ctx context.Context, skip, limit int) ([]Question, error) {
	const stmt = `
SELECT ` + questionColumns + `
FROM questions q
ORDER BY q.id
OFFSET $1 LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, stmt, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *sqlRepository) UpdateQuestion(ctx context.Context, q *Question) error {
	const stmt = `
UPDATE questions
SET title = $2, content = $3, updated_at = NOW()
WHERE id = $1
RETURNING updated_at
`
	err := r.db.QueryRowContext(ctx, stmt, q.ID, q.Title, q.Content).Scan(&q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrQuestionNotFound
	}
	return err
}

func (r *sqlRepository) DeleteQuestion(ctx context.Context, id int64) error {
	// Answers and votes cascade via FK.
	const stmt = `DELETE FROM questions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (r *sqlRepository) CreateAnswer(ctx context.Context, a *Answer) error {
	const stmt = `
INSERT INTO answers (content, question_id, user_id)
VALUES ($1, $2, $3)
RETURNING id, is_accepted, created_at, updated_at
`
	return r.db.QueryRowContext(ctx, stmt, a.Content, a.QuestionID, a.UserID).
		Scan(&a.ID, &a.IsAccepted, &a.CreatedAt, &a.UpdatedAt)
}

func (r *sqlRepository) ListAnswersByQuestion(ctx context.Context, questionID int64) ([]Answer, error) {
	const stmt = `
SELECT id, content, question_id, user_id, is_accepted, created_at, updated_at
FROM answers
WHERE question_id = $1
ORDER BY id
`
	rows, err := r.db.QueryContext(ctx, stmt, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.Content, &a.QuestionID, &a.UserID, &a.IsAccepted, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *sqlRepository) UpsertVote(ctx context.Context, v *Vote) error {
	// One vote per (question, user); re-voting changes the type in place.
	const stmt = `
INSERT INTO votes (question_id, user_id, vote_type)
VALUES ($1, $2, $3)
ON CONFLICT (question_id, user_id)
DO UPDATE SET vote_type = EXCLUDED.vote_type
RETURNING id, created_at
`
	return r.db.QueryRowContext(ctx, stmt, v.QuestionID, v.UserID, string(v.VoteType)).
		Scan(&v.ID, &v.CreatedAt)
}

func (r *sqlRepository) FindVote(ctx context.Context, id int64) (Vote, error) {
	const stmt = `
SELECT id, question_id, user_id, vote_type, created_at
FROM votes
WHERE id = $1
`
	var v Vote
	var voteType string
	err := r.db.QueryRowContext(ctx, stmt, id).
		Scan(&v.ID, &v.QuestionID, &v.UserID, &voteType, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vote{}, ErrVoteNotFound
		}
		return Vote{}, err
	}
	v.VoteType = VoteType(voteType)
	return v, nil
}

func (r *sqlRepository) DeleteVote(ctx context.Context, id int64) error {
	const stmt = `DELETE FROM votes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVoteNotFound
	}
	return nil
}

func (r *sqlRepository) VoteStats(ctx context.Context, questionID int64) (VoteStats, error) {
	const stmt = `
SELECT
  COUNT(*) FILTER (WHERE vote_type = 'upvote'),
  COUNT(*) FILTER (WHERE vote_type = 'downvote')
FROM votes
WHERE question_id = $1
`
	var s VoteStats
	if err := r.db.QueryRowContext(ctx, stmt, questionID).Scan(&s.Upvotes, &s.Downvotes); err != nil {
		return VoteStats{}, err
	}
	s.Total = s.Upvotes - s.Downvotes
	return s, nil
}
