package qna

import (
	"context"
	"errors"
)

// Service implements question, answer and vote operations.
// Ownership rule: only the author may update or delete a question; moderation
// deletes bypass this and are role-gated at the route level. Votes may only be
// retracted by the user who cast them.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var ErrNotOwner = errors.New("qna: not the author")

type QuestionParams struct {
	Title   string
	Content string
}

func (s *Service) CreateQuestion(ctx context.Context, userID int64, p QuestionParams) (Question, error) {
	q := Question{
		Title:   p.Title,
		Content: p.Content,
		UserID:  userID,
	}
	if err := s.repo.CreateQuestion(ctx, &q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *Service) ListQuestions(ctx context.Context, skip, limit int) ([]Question, error) {
	skip, limit = clampPage(skip, limit)
	return s.repo.ListQuestions(ctx, skip, limit)
}

// GetQuestion returns one question and counts the read.
func (s *Service) GetQuestion(ctx context.Context, id int64) (Question, error) {
	return s.repo.IncrementQuestionViews(ctx, id)
}

type QuestionUpdateParams struct {
	Title   *string
	Content *string
}

func (s *Service) UpdateQuestion(ctx context.Context, id, userID int64, p QuestionUpdateParams) (Question, error) {
	q, err := s.repo.FindQuestion(ctx, id)
	if err != nil {
		return Question{}, err
	}
	if q.UserID != userID {
		return Question{}, ErrNotOwner
	}

	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Content != nil {
		q.Content = *p.Content
	}

	if err := s.repo.UpdateQuestion(ctx, &q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *Service) DeleteQuestion(ctx context.Context, id, userID int64) error {
	q, err := s.repo.FindQuestion(ctx, id)
	if err != nil {
		return err
	}
	if q.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteQuestion(ctx, id)
}

// ModerationDeleteQuestion removes any question regardless of author.
func (s *Service) ModerationDeleteQuestion(ctx context.Context, id int64) error {
	return s.repo.DeleteQuestion(ctx, id)
}

func (s *Service) CreateAnswer(ctx context.Context, questionID, userID int64, content string) (Answer, error) {
	// Answers may only attach to questions that exist.
	if _, err := s.repo.FindQuestion(ctx, questionID); err != nil {
		return Answer{}, err
	}
	a := Answer{
		Content:    content,
		QuestionID: questionID,
		UserID:     userID,
	}
	if err := s.repo.CreateAnswer(ctx, &a); err != nil {
		return Answer{}, err
	}
	return a, nil
}

func (s *Service) ListAnswers(ctx context.Context, questionID int64) ([]Answer, error) {
	if _, err := s.repo.FindQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return s.repo.ListAnswersByQuestion(ctx, questionID)
}

// CastVote records a vote, replacing the user's previous vote on the same
// question if one exists.
func (s *Service) CastVote(ctx context.Context, questionID, userID int64, voteType VoteType) (Vote, error) {
	if _, err := s.repo.FindQuestion(ctx, questionID); err != nil {
		return Vote{}, err
	}
	v := Vote{
		QuestionID: questionID,
		UserID:     userID,
		VoteType:   voteType,
	}
	if err := s.repo.UpsertVote(ctx, &v); err != nil {
		return Vote{}, err
	}
	return v, nil
}

// RetractVote removes a vote; only the voter may retract it.
func (s *Service) RetractVote(ctx context.Context, voteID, userID int64) error {
	v, err := s.repo.FindVote(ctx, voteID)
	if err != nil {
		return err
	}
	if v.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteVote(ctx, voteID)
}

func (s *Service) QuestionVotes(ctx context.Context, questionID int64) (VoteStats, error) {
	if _, err := s.repo.FindQuestion(ctx, questionID); err != nil {
		return VoteStats{}, err
	}
	return s.repo.VoteStats(ctx, questionID)
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
