package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

var (
	ErrNotFound           = errors.New("pay plan not found")
	ErrInvalidArgument    = errors.New("invalid pay plan")
	ErrDuplicateThreshold = errors.New("threshold already present in this ladder")
)

// Repository abstracts payplan persistence.
type Repository interface {
	// FindLadder returns the rows for exactly (language, centre) with non-null
	// threshold and rate, ascending by threshold.
	FindLadder(ctx context.Context, languageID languages.ID, centreID centres.ID) ([]Plan, error)
	List(ctx context.Context, f PlanFilter) ([]Plan, error)
	Get(ctx context.Context, id int64) (Plan, error)
	Create(ctx context.Context, p Plan) (int64, error)
	Update(ctx context.Context, p Plan) error
	Delete(ctx context.Context, id int64) error
}

// Service resolves agent pay rates from tiered payplan ladders.
//
// Contract:
// - A centre-specific ladder wins; otherwise the language-wide (centre 0) ladder applies.
// - A miss is reported as an empty Billing; errors are storage failures only.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// Resolve returns the rate for acdSeconds and the amount due for callSeconds of talk time.
func (s *Service) Resolve(ctx context.Context, languageID languages.ID, centreID centres.ID, acdSeconds, callSeconds float64) (Billing, error) {
	if acdSeconds <= 0 {
		return Billing{}, nil
	}
	l, err := s.Ladder(ctx, languageID, centreID)
	if err != nil {
		return Billing{}, err
	}
	rate, ok := ResolveRate(l.Plans, acdSeconds)
	if !ok {
		return Billing{}, nil
	}
	due := AmountDue(callSeconds, rate)
	return Billing{Rate: &rate, Due: &due}, nil
}

// Ladder returns the effective ladder for a (language, centre) pair.
func (s *Service) Ladder(ctx context.Context, languageID languages.ID, centreID centres.ID) (Ladder, error) {
	out := Ladder{LanguageID: languageID, CentreID: centreID}
	plans, err := s.repo.FindLadder(ctx, languageID, centreID)
	if err != nil {
		return Ladder{}, fmt.Errorf("load ladder: %w", err)
	}
	if len(plans) == 0 && centreID != centres.Global {
		plans, err = s.repo.FindLadder(ctx, languageID, centres.Global)
		if err != nil {
			return Ladder{}, fmt.Errorf("load global ladder: %w", err)
		}
		out.Global = len(plans) > 0
	}
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].Threshold < plans[j].Threshold })
	if plans == nil {
		plans = []Plan{}
	}
	out.Plans = plans
	return out, nil
}

func (s *Service) ListPlans(ctx context.Context, f PlanFilter) ([]Plan, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) GetPlan(ctx context.Context, id int64) (Plan, error) {
	if id <= 0 {
		return Plan{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) CreatePlan(ctx context.Context, p Plan) (Plan, error) {
	if err := validate(p); err != nil {
		return Plan{}, err
	}
	if err := s.checkThreshold(ctx, p); err != nil {
		return Plan{}, err
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return Plan{}, fmt.Errorf("create pay plan: %w", err)
	}
	p.ID = id
	return p, nil
}

func (s *Service) UpdatePlan(ctx context.Context, p Plan) (Plan, error) {
	if p.ID <= 0 {
		return Plan{}, ErrNotFound
	}
	if _, err := s.repo.Get(ctx, p.ID); err != nil {
		return Plan{}, err
	}
	if err := validate(p); err != nil {
		return Plan{}, err
	}
	if err := s.checkThreshold(ctx, p); err != nil {
		return Plan{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) DeletePlan(ctx context.Context, id int64) (Plan, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// checkThreshold keeps each ladder a strict step function.
func (s *Service) checkThreshold(ctx context.Context, p Plan) error {
	rows, err := s.repo.FindLadder(ctx, p.LanguageID, p.CentreID)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if r.Threshold == p.Threshold && r.ID != p.ID {
			return fmt.Errorf("%w: %d", ErrDuplicateThreshold, p.Threshold)
		}
	}
	return nil
}

func validate(p Plan) error {
	switch {
	case p.LanguageID <= 0:
		return fmt.Errorf("%w: language is required", ErrInvalidArgument)
	case p.CentreID < 0:
		return fmt.Errorf("%w: centre must not be negative", ErrInvalidArgument)
	case p.Threshold < 0:
		return fmt.Errorf("%w: acd threshold must not be negative", ErrInvalidArgument)
	case p.Rate < 0:
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidArgument)
	}
	return nil
}
