package reporting

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

type MemoryOperator struct {
	ID         int64
	CentreID   centres.ID
	LanguageID languages.ID
	Identifier string
	FirstName  string
	Surname    string
}

type MemorySession struct {
	ID         int64
	OperatorID int64
	DeviceID   int64
	Start      time.Time
	// Duration is nil while the session is active.
	Duration    *time.Duration
	CallSeconds float64
	HoldSeconds float64
	Calls       int64
	Missed      int64
	Waiting     int64
}

// MemoryRepo aggregates fixtures in Go with the same join rules as PostgresRepo.
type MemoryRepo struct {
	mu sync.Mutex

	Centres   map[centres.ID]string
	Languages map[languages.ID]string
	Devices   map[int64]string
	Operators []MemoryOperator
	Sessions  []MemorySession
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		Centres:   map[centres.ID]string{},
		Languages: map[languages.ID]string{},
		Devices:   map[int64]string{},
	}
}

type joined struct {
	s MemorySession
	o MemoryOperator
}

// inner returns in-range sessions whose operator, centre and language all resolve.
func (r *MemoryRepo) inner(rg Range, closedOnly bool) []joined {
	ops := make(map[int64]MemoryOperator, len(r.Operators))
	for _, o := range r.Operators {
		ops[o.ID] = o
	}
	var out []joined
	for _, s := range r.Sessions {
		if !rg.Contains(s.Start) || (closedOnly && s.Duration == nil) {
			continue
		}
		o, ok := ops[s.OperatorID]
		if !ok {
			continue
		}
		if _, ok := r.Centres[o.CentreID]; !ok {
			continue
		}
		if _, ok := r.Languages[o.LanguageID]; !ok {
			continue
		}
		out = append(out, joined{s: s, o: o})
	}
	return out
}

func (r *MemoryRepo) CentreTotals(ctx context.Context, rg Range) ([]CentreSummaryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type acc struct {
		row    CentreSummaryRow
		langs  map[languages.ID]struct{}
		agents map[int64]struct{}
	}
	by := map[centres.ID]*acc{}
	for _, j := range r.inner(rg, false) {
		a, ok := by[j.o.CentreID]
		if !ok {
			a = &acc{
				row:    CentreSummaryRow{CentreID: j.o.CentreID, CentreName: r.Centres[j.o.CentreID]},
				langs:  map[languages.ID]struct{}{},
				agents: map[int64]struct{}{},
			}
			by[j.o.CentreID] = a
		}
		a.langs[j.o.LanguageID] = struct{}{}
		a.agents[j.o.ID] = struct{}{}
		a.row.add(memoryAggregates(j.s))
	}

	out := make([]CentreSummaryRow, 0, len(by))
	for _, a := range by {
		a.row.Languages = int64(len(a.langs))
		a.row.Agents = int64(len(a.agents))
		out = append(out, a.row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CentreName < out[j].CentreName })
	return out, nil
}

func (r *MemoryRepo) LanguageTotals(ctx context.Context, rg Range, centreID centres.ID) ([]LanguageSummaryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type acc struct {
		row    LanguageSummaryRow
		agents map[int64]struct{}
	}
	by := map[languages.ID]*acc{}
	for _, j := range r.inner(rg, false) {
		if j.o.CentreID != centreID {
			continue
		}
		a, ok := by[j.o.LanguageID]
		if !ok {
			a = &acc{
				row:    LanguageSummaryRow{LanguageID: j.o.LanguageID, LanguageName: r.Languages[j.o.LanguageID]},
				agents: map[int64]struct{}{},
			}
			by[j.o.LanguageID] = a
		}
		a.agents[j.o.ID] = struct{}{}
		a.row.add(memoryAggregates(j.s))
	}

	out := make([]LanguageSummaryRow, 0, len(by))
	for _, a := range by {
		a.row.Agents = int64(len(a.agents))
		out = append(out, a.row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LanguageName < out[j].LanguageName })
	return out, nil
}

func (r *MemoryRepo) AgentTotals(ctx context.Context, rg Range, centreID centres.ID, languageID languages.ID) ([]AgentSummaryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	by := map[int64]*AgentSummaryRow{}
	for _, j := range r.inner(rg, true) {
		if j.o.CentreID != centreID || j.o.LanguageID != languageID {
			continue
		}
		row, ok := by[j.o.ID]
		if !ok {
			row = &AgentSummaryRow{
				OperatorID: j.o.ID,
				Identifier: j.o.Identifier,
				FullName:   strings.TrimSpace(j.o.FirstName + " " + j.o.Surname),
			}
			by[j.o.ID] = row
		}
		row.add(memoryAggregates(j.s))
	}

	out := make([]AgentSummaryRow, 0, len(by))
	for _, row := range by {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *MemoryRepo) AgentSessions(ctx context.Context, rg Range, operatorID int64) ([]SessionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []SessionRow
	for _, s := range r.Sessions {
		if s.OperatorID != operatorID || s.Duration == nil || !rg.Contains(s.Start) {
			continue
		}
		out = append(out, SessionRow{
			SessionID:       s.ID,
			Start:           s.Start,
			DurationSeconds: s.Duration.Seconds(),
			CallSeconds:     s.CallSeconds,
			HoldSeconds:     s.HoldSeconds,
			Calls:           s.Calls,
			Missed:          s.Missed,
			DeviceName:      r.Devices[s.DeviceID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *MemoryRepo) ActiveSessions(ctx context.Context, centreID *centres.ID) ([]ActiveSessionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make(map[int64]MemoryOperator, len(r.Operators))
	for _, o := range r.Operators {
		ops[o.ID] = o
	}
	var out []ActiveSessionRow
	for _, s := range r.Sessions {
		if s.Duration != nil {
			continue
		}
		o := ops[s.OperatorID]
		if centreID != nil && o.CentreID != *centreID {
			continue
		}
		out = append(out, ActiveSessionRow{
			SessionID:    s.ID,
			OperatorID:   o.ID,
			Identifier:   o.Identifier,
			FullName:     strings.TrimSpace(o.FirstName + " " + o.Surname),
			CentreID:     o.CentreID,
			CentreName:   r.Centres[o.CentreID],
			LanguageID:   o.LanguageID,
			LanguageName: r.Languages[o.LanguageID],
			DeviceName:   r.Devices[s.DeviceID],
			Start:        s.Start,
			Calls:        s.Calls,
			Missed:       s.Missed,
			Waiting:      s.Waiting,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func memoryAggregates(s MemorySession) Aggregates {
	return Aggregates{Sessions: 1, Calls: s.Calls, CallSeconds: s.CallSeconds}
}
