package centres

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID ID
	rows   map[ID]Centre
}

func NewMemoryRepo(seed ...Centre) *MemoryRepo {
	r := &MemoryRepo{rows: map[ID]Centre{}}
	for _, c := range seed {
		r.rows[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Centre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Centre, 0, len(r.rows))
	for _, c := range r.rows {
		if f.matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id ID) (Centre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return Centre{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) Create(ctx context.Context, c Centre) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.rows[c.ID] = c
	return c.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, c Centre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return ErrNotFound
	}
	r.rows[c.ID] = c
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
