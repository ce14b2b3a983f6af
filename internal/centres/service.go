package centres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrNotFound        = errors.New("centre not found")
	ErrInvalidArgument = errors.New("invalid centre")
)

// Repository abstracts centres persistence.
type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Centre, error)
	Get(ctx context.Context, id ID) (Centre, error)
	Create(ctx context.Context, c Centre) (ID, error)
	Update(ctx context.Context, c Centre) error
	Delete(ctx context.Context, id ID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context, f ListFilter) ([]Centre, error) {
	switch f.Status {
	case StatusAny, StatusActive, StatusDisabled:
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", ErrInvalidArgument, f.Status)
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id ID) (Centre, error) {
	if id <= 0 {
		return Centre{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Centre) (Centre, error) {
	c = normalize(c)
	if err := validate(c); err != nil {
		return Centre{}, err
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return Centre{}, fmt.Errorf("create centre: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *Service) Update(ctx context.Context, c Centre) (Centre, error) {
	if c.ID <= 0 {
		return Centre{}, ErrNotFound
	}
	c = normalize(c)
	if err := validate(c); err != nil {
		return Centre{}, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Centre{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id ID) (Centre, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Centre{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Centre{}, err
	}
	return c, nil
}

// Names returns every centre name keyed by id, for display lookups.
func (s *Service) Names(ctx context.Context) (map[ID]string, error) {
	all, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[ID]string, len(all))
	for _, c := range all {
		out[c.ID] = c.Name
	}
	return out, nil
}

func normalize(c Centre) Centre {
	for _, p := range []*string{&c.Name, &c.Abbreviation, &c.Contact, &c.Email, &c.Mobile, &c.BillName, &c.Address1, &c.Address2, &c.Address3, &c.Address4} {
		*p = strings.TrimSpace(*p)
	}
	return c
}

// Column widths come from the centres table.
func validate(c Centre) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"name", c.Name, 32},
		{"abbreviation", c.Abbreviation, 32},
		{"contact", c.Contact, 32},
		{"email", c.Email, 32},
		{"mobile", c.Mobile, 32},
		{"bill_name", c.BillName, 64},
		{"address1", c.Address1, 64},
		{"address2", c.Address2, 64},
		{"address3", c.Address3, 64},
		{"address4", c.Address4, 64},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidArgument, l.field, l.max)
		}
	}
	return nil
}
