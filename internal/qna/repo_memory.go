package qna

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Q&A store useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu        sync.Mutex
	nextQID   int64
	nextAID   int64
	nextVID   int64
	questions map[int64]Question
	answers   map[int64]Answer
	votes     map[int64]Vote
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextQID:   1,
		nextAID:   1,
		nextVID:   1,
		questions: make(map[int64]Question),
		answers:   make(map[int64]Answer),
		votes:     make(map[int64]Vote),
	}
}

func (r *MemoryRepo) CreateQuestion(ctx context.Context, q *Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = r.nextQID
	r.nextQID++
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	r.questions[q.ID] = *q
	return nil
}

func (r *MemoryRepo) FindQuestion(ctx context.Context, id int64) (Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findQuestionLocked(id)
}

func (r *MemoryRepo) findQuestionLocked(id int64) (Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	for _, a := range r.answers {
		if a.QuestionID == id {
			q.AnswerCount++
		}
	}
	for _, v := range r.votes {
		if v.QuestionID == id {
			q.VoteCount++
		}
	}
	return q, nil
}

func (r *MemoryRepo) IncrementQuestionViews(ctx context.Context, id int64) (Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	q.Views++
	r.questions[id] = q
	return r.findQuestionLocked(id)
}

func (r *MemoryRepo) ListQuestions(ctx context.Context, skip, limit int) ([]Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Question
	for id := int64(1); id < r.nextQID; id++ {
		q, err := r.findQuestionLocked(id)
		if err != nil {
			continue
		}
		out = append(out, q)
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) UpdateQuestion(ctx context.Context, q *Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.questions[q.ID]
	if !ok {
		return ErrQuestionNotFound
	}
	stored.Title = q.Title
	stored.Content = q.Content
	stored.UpdatedAt = time.Now().UTC()
	r.questions[q.ID] = stored
	q.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryRepo) DeleteQuestion(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(r.questions, id)
	for aid, a := range r.answers {
		if a.QuestionID == id {
			delete(r.answers, aid)
		}
	}
	for vid, v := range r.votes {
		if v.QuestionID == id {
			delete(r.votes, vid)
		}
	}
	return nil
}

func (r *MemoryRepo) CreateAnswer(ctx context.Context, a *Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextAID
	r.nextAID++
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.answers[a.ID] = *a
	return nil
}

func (r *MemoryRepo) ListAnswersByQuestion(ctx context.Context, questionID int64) ([]Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Answer
	for id := int64(1); id < r.nextAID; id++ {
		a, ok := r.answers[id]
		if !ok || a.QuestionID != questionID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *MemoryRepo) UpsertVote(ctx context.Context, v *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.votes {
		if existing.QuestionID == v.QuestionID && existing.UserID == v.UserID {
			existing.VoteType = v.VoteType
			r.votes[id] = existing
			*v = existing
			return nil
		}
	}
	v.ID = r.nextVID
	r.nextVID++
	v.CreatedAt = time.Now().UTC()
	r.votes[v.ID] = *v
	return nil
}

func (r *MemoryRepo) FindVote(ctx context.Context, id int64) (Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[id]
	if !ok {
		return Vote{}, ErrVoteNotFound
	}
	return v, nil
}

func (r *MemoryRepo) DeleteVote(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.votes[id]; !ok {
		return ErrVoteNotFound
	}
	delete(r.votes, id)
	return nil
}

func (r *MemoryRepo) VoteStats(ctx context.Context, questionID int64) (VoteStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s VoteStats
	for _, v := range r.votes {
		if v.QuestionID != questionID {
			continue
		}
		switch v.VoteType {
		case VoteUp:
			s.Upvotes++
		case VoteDown:
			s.Downvotes++
		}
	}
	s.Total = s.Upvotes - s.Downvotes
	return s, nil
}
