package pricing

import (
	"context"
	"sort"
	"sync"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Plan
}

func NewMemoryRepo(seed ...Plan) *MemoryRepo {
	r := &MemoryRepo{rows: map[int64]Plan{}}
	for _, p := range seed {
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		} else if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.rows[p.ID] = p
	}
	return r
}

func (r *MemoryRepo) filter(keep func(Plan) bool) []Plan {
	out := []Plan{}
	for _, p := range r.rows {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.LanguageID != b.LanguageID {
			return a.LanguageID < b.LanguageID
		}
		if a.CentreID != b.CentreID {
			return a.CentreID < b.CentreID
		}
		if a.Threshold != b.Threshold {
			return a.Threshold < b.Threshold
		}
		return a.ID < b.ID
	})
	return out
}

func (r *MemoryRepo) FindLadder(ctx context.Context, languageID languages.ID, centreID centres.ID) ([]Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(p Plan) bool { return p.LanguageID == languageID && p.CentreID == centreID }), nil
}

func (r *MemoryRepo) List(ctx context.Context, f PlanFilter) ([]Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(p Plan) bool {
		if f.LanguageID != nil && p.LanguageID != *f.LanguageID {
			return false
		}
		return f.CentreID == nil || p.CentreID == *f.CentreID
	}), nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return Plan{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) Create(ctx context.Context, p Plan) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.rows[p.ID] = p
	return p.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, p Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[p.ID]; !ok {
		return ErrNotFound
	}
	r.rows[p.ID] = p
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
