package operators

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Operator
}

func NewMemoryRepo(seed ...Operator) *MemoryRepo {
	r := &MemoryRepo{rows: map[int64]Operator{}}
	for _, o := range seed {
		r.rows[o.ID] = o
		if o.ID > r.nextID {
			r.nextID = o.ID
		}
	}
	return r
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter, limit, offset int) ([]Operator, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Operator
	for _, o := range r.rows {
		if f.CentreID != nil && o.CentreID != *f.CentreID {
			continue
		}
		if f.Search != "" && !matchesSearch(o, f.Search) {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func matchesSearch(o Operator, q string) bool {
	q = strings.ToLower(q)
	for _, v := range []string{o.FirstName, o.Surname, o.Identifier, o.Email} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.rows[id]
	if !ok {
		return Operator{}, ErrNotFound
	}
	return o, nil
}

func (r *MemoryRepo) Identifiers(ctx context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]struct{}, len(r.rows))
	for _, o := range r.rows {
		out[o.Identifier] = struct{}{}
	}
	return out, nil
}

func (r *MemoryRepo) Create(ctx context.Context, o Operator) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Identifier == o.Identifier {
			return 0, ErrIdentifierTaken
		}
	}
	r.nextID++
	o.ID = r.nextID
	r.rows[o.ID] = o
	return o.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, o Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[o.ID]; !ok {
		return ErrNotFound
	}
	r.rows[o.ID] = o
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
