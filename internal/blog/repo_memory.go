package blog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory blog store useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	blogs  map[int64]Blog
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, blogs: make(map[int64]Blog)}
}

func (r *MemoryRepo) Create(ctx context.Context, b *Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.blogs[b.ID] = *b
	return nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id int64) (Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return Blog{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) IncrementViews(ctx context.Context, id int64) (Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return Blog{}, ErrNotFound
	}
	b.Views++
	r.blogs[id] = b
	return b, nil
}

func (r *MemoryRepo) List(ctx context.Context, skip, limit int, publishedOnly bool) ([]Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Blog
	for id := int64(1); id < r.nextID; id++ {
		b, ok := r.blogs[id]
		if !ok {
			continue
		}
		if publishedOnly && !b.IsPublished {
			continue
		}
		out = append(out, b)
	}
	return page(out, skip, limit), nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Blog
	for id := int64(1); id < r.nextID; id++ {
		b, ok := r.blogs[id]
		if !ok || b.UserID != userID || !b.IsPublished {
			continue
		}
		out = append(out, b)
	}
	return page(out, skip, limit), nil
}

func (r *MemoryRepo) Update(ctx context.Context, b *Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	r.blogs[b.ID] = *b
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return ErrNotFound
	}
	delete(r.blogs, id)
	return nil
}

func page(in []Blog, skip, limit int) []Blog {
	if skip >= len(in) {
		return nil
	}
	in = in[skip:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
