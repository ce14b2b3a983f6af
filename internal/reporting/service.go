package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/internal/pricing"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository runs the grouped aggregate queries. Implementations fill the
// counters only; ACD, names and billing are derived by the Service.
//
// Joins from sessions to operators and from operators to centres and languages
// are inner joins; the device join is optional.
type Repository interface {
	CentreTotals(ctx context.Context, r Range) ([]CentreSummaryRow, error)
	LanguageTotals(ctx context.Context, r Range, centreID centres.ID) ([]LanguageSummaryRow, error)
	// AgentTotals and AgentSessions consider closed sessions only.
	AgentTotals(ctx context.Context, r Range, centreID centres.ID, languageID languages.ID) ([]AgentSummaryRow, error)
	AgentSessions(ctx context.Context, r Range, operatorID int64) ([]SessionRow, error)
	ActiveSessions(ctx context.Context, centreID *centres.ID) ([]ActiveSessionRow, error)
}

type RateResolver interface {
	Resolve(ctx context.Context, languageID languages.ID, centreID centres.ID, acdSeconds, callSeconds float64) (pricing.Billing, error)
}

type CentreNames interface {
	Names(ctx context.Context) (map[centres.ID]string, error)
}

type LanguageNames interface {
	Names(ctx context.Context) (map[languages.ID]string, error)
}

type Options struct {
	Location *time.Location
	MaxDays  int
}

type Service struct {
	repo      Repository
	rates     RateResolver
	centres   CentreNames
	languages LanguageNames
	opts      Options
	clock     func() time.Time
}

func NewService(repo Repository, rates RateResolver, c CentreNames, l LanguageNames, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{repo: repo, rates: rates, centres: c, languages: l, opts: opts, clock: time.Now}
}

// Range parses request bounds with the configured timezone and span limit.
func (s *Service) Range(from, to string) (Range, error) {
	return ParseRange(from, to, s.opts.Location, s.opts.MaxDays, s.clock())
}

func (s *Service) CentreSummary(ctx context.Context, r Range) (CentreReport, error) {
	rows, err := s.repo.CentreTotals(ctx, r)
	if err != nil {
		return CentreReport{}, fmt.Errorf("centre totals: %w", err)
	}
	out := CentreReport{Range: r, Rows: nonNil(rows)}
	for i := range out.Rows {
		row := &out.Rows[i]
		row.finish()
		if row.CentreName == "" {
			row.CentreName = centres.UnknownName
		}
		out.Totals.add(row.Aggregates)
	}
	out.Totals.finish()
	return out, nil
}

// LanguageSummary groups one centre's sessions by language and bills each
// language through the pay plan ladder. Rows without a rate count 0 toward TotalDue.
func (s *Service) LanguageSummary(ctx context.Context, r Range, centreID centres.ID) (LanguageReport, error) {
	rows, err := s.repo.LanguageTotals(ctx, r, centreID)
	if err != nil {
		return LanguageReport{}, fmt.Errorf("language totals: %w", err)
	}
	cn, err := s.centres.Names(ctx)
	if err != nil {
		return LanguageReport{}, err
	}

	out := LanguageReport{Range: r, CentreID: centreID, CentreName: centres.NameOf(cn, centreID), Rows: nonNil(rows)}
	for i := range out.Rows {
		row := &out.Rows[i]
		row.finish()
		if row.LanguageName == "" {
			row.LanguageName = languages.UnknownName
		}
		b, err := s.rates.Resolve(ctx, row.LanguageID, centreID, row.ACD, row.CallSeconds)
		if err != nil {
			return LanguageReport{}, fmt.Errorf("resolve rate for language %d: %w", row.LanguageID, err)
		}
		row.Rate, row.Due = b.Rate, b.Due

		out.Totals.Agents += row.Agents
		out.Totals.add(row.Aggregates)
		if row.Due != nil {
			out.Totals.TotalDue += *row.Due
		}
	}
	out.Totals.finish()
	return out, nil
}

func (s *Service) AgentSummary(ctx context.Context, r Range, centreID centres.ID, languageID languages.ID) (AgentReport, error) {
	rows, err := s.repo.AgentTotals(ctx, r, centreID, languageID)
	if err != nil {
		return AgentReport{}, fmt.Errorf("agent totals: %w", err)
	}
	cn, err := s.centres.Names(ctx)
	if err != nil {
		return AgentReport{}, err
	}
	ln, err := s.languages.Names(ctx)
	if err != nil {
		return AgentReport{}, err
	}

	out := AgentReport{
		Range:        r,
		CentreID:     centreID,
		CentreName:   centres.NameOf(cn, centreID),
		LanguageID:   languageID,
		LanguageName: languages.NameOf(ln, languageID),
		Rows:         nonNil(rows),
	}
	for i := range out.Rows {
		out.Rows[i].finish()
		out.Totals.add(out.Rows[i].Aggregates)
	}
	out.Totals.finish()
	return out, nil
}

func (s *Service) AgentSessions(ctx context.Context, r Range, operatorID int64) (SessionReport, error) {
	if operatorID <= 0 {
		return SessionReport{}, fmt.Errorf("%w: operator is required", ErrInvalidRequest)
	}
	rows, err := s.repo.AgentSessions(ctx, r, operatorID)
	if err != nil {
		return SessionReport{}, fmt.Errorf("agent sessions: %w", err)
	}
	out := SessionReport{Range: r, OperatorID: operatorID, Rows: nonNil(rows)}
	for i := range out.Rows {
		row := &out.Rows[i]
		row.ACD = averageCallDuration(row.Calls, row.CallSeconds)
		if row.DeviceName == "" {
			row.DeviceName = UnknownDevice
		}
		out.Totals.add(Aggregates{Sessions: 1, Calls: row.Calls, CallSeconds: row.CallSeconds})
	}
	out.Totals.finish()
	return out, nil
}

// ActiveSessions lists sessions still in progress, optionally for one centre.
func (s *Service) ActiveSessions(ctx context.Context, centreID *centres.ID) ([]ActiveSessionRow, error) {
	rows, err := s.repo.ActiveSessions(ctx, centreID)
	if err != nil {
		return nil, fmt.Errorf("active sessions: %w", err)
	}
	now := s.clock()
	rows = nonNil(rows)
	for i := range rows {
		row := &rows[i]
		if row.CentreName == "" {
			row.CentreName = centres.UnknownName
		}
		if row.LanguageName == "" {
			row.LanguageName = languages.UnknownName
		}
		if row.DeviceName == "" {
			row.DeviceName = UnknownDevice
		}
		if !row.Start.IsZero() && now.After(row.Start) {
			row.ElapsedSeconds = int64(now.Sub(row.Start) / time.Second)
		}
	}
	return rows, nil
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
