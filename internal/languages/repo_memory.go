package languages

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID ID
	rows   map[ID]Language
}

func NewMemoryRepo(seed ...Language) *MemoryRepo {
	r := &MemoryRepo{rows: map[ID]Language{}}
	for _, l := range seed {
		r.rows[l.ID] = l
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
	}
	return r
}

func (r *MemoryRepo) List(ctx context.Context) ([]Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Language, 0, len(r.rows))
	for _, l := range r.rows {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id ID) (Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return Language{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) Create(ctx context.Context, l Language) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	l.ID = r.nextID
	r.rows[l.ID] = l
	return l.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, l Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[l.ID]; !ok {
		return ErrNotFound
	}
	r.rows[l.ID] = l
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
