package audit

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory append-only repository useful for tests.
type MemoryRepo struct {
	mu      sync.Mutex
	signins []Signin
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, s Signin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = int64(len(r.signins) + 1)
	r.signins = append(r.signins, s)
	return nil
}

func (r *MemoryRepo) Recent(ctx context.Context, userID int64, limit int) ([]Signin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Signin{}
	for _, s := range r.signins {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Signins() []Signin {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Signin, len(r.signins))
	copy(out, r.signins)
	return out
}
