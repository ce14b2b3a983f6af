package administrators

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
	rows   map[int64]Administrator
}

func NewMemoryRepo(seed ...Administrator) *MemoryRepo {
	r := &MemoryRepo{rows: map[int64]Administrator{}}
	for _, a := range seed {
		r.rows[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

// Password returns the stored password for id.
func (r *MemoryRepo) Password(id int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].Password
}

func (r *MemoryRepo) List(ctx context.Context, search string) ([]Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(search)
	out := []Administrator{}
	for _, a := range r.rows {
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Username), q) &&
			!strings.Contains(strings.ToLower(a.Email), q) {
			continue
		}
		a.Password = ""
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Administrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return Administrator{}, ErrNotFound
	}
	a.Password = ""
	return a, nil
}

func (r *MemoryRepo) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID != exceptID && strings.EqualFold(a.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) Create(ctx context.Context, a Administrator) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.CentreName = ""
	r.rows[a.ID] = a
	return a.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, a Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[a.ID]
	if !ok {
		return ErrNotFound
	}
	if a.Password == "" {
		a.Password = cur.Password
	}
	a.Accessed = cur.Accessed
	a.CentreName = ""
	r.rows[a.ID] = a
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
