package operators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/pkg/logger"
)

var (
	ErrNotFound        = errors.New("operator not found")
	ErrInvalidArgument = errors.New("invalid operator")
	ErrUnknownCentre   = errors.New("centre does not exist")
	ErrUnknownLanguage = errors.New("language does not exist")
	// ErrIdentifierTaken is returned by repositories when the identifier is already in use.
	ErrIdentifierTaken = errors.New("identifier already in use")
	ErrDuplicate       = errors.New("could not allocate a free identifier")
)

const maxInsertAttempts = 3

type Repository interface {
	List(ctx context.Context, f ListFilter, limit, offset int) ([]Operator, int, error)
	Get(ctx context.Context, id int64) (Operator, error)
	Identifiers(ctx context.Context) (map[string]struct{}, error)
	// Create inserts o and fails with ErrIdentifierTaken when o.Identifier exists.
	Create(ctx context.Context, o Operator) (int64, error)
	Update(ctx context.Context, o Operator) error
	Delete(ctx context.Context, id int64) error
}

type CentreNames interface {
	Names(ctx context.Context) (map[centres.ID]string, error)
}

type LanguageNames interface {
	Names(ctx context.Context) (map[languages.ID]string, error)
}

type Service struct {
	repo      Repository
	centres   CentreNames
	languages LanguageNames
	ids       *IdentifierGenerator
	clock     func() time.Time
}

func NewService(repo Repository, c CentreNames, l LanguageNames, ids *IdentifierGenerator) *Service {
	if ids == nil {
		ids = NewIdentifierGenerator(nil)
	}
	return &Service{repo: repo, centres: c, languages: l, ids: ids, clock: time.Now}
}

func (s *Service) List(ctx context.Context, f ListFilter) (Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	f.Search = strings.TrimSpace(f.Search)

	ops, total, err := s.repo.List(ctx, f, PageSize, (f.Page-1)*PageSize)
	if err != nil {
		return Page{}, fmt.Errorf("list operators: %w", err)
	}
	cn, ln, err := s.names(ctx)
	if err != nil {
		return Page{}, err
	}

	out := Page{Items: make([]Listing, 0, len(ops)), Page: f.Page, PerPage: PageSize, Total: total}
	for _, o := range ops {
		out.Items = append(out.Items, listing(o, cn, ln))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Listing, error) {
	if id <= 0 {
		return Listing{}, ErrNotFound
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	cn, ln, err := s.names(ctx)
	if err != nil {
		return Listing{}, err
	}
	return listing(o, cn, ln), nil
}

// Create stores a new operator with a freshly generated identifier.
func (s *Service) Create(ctx context.Context, o Operator) (Listing, error) {
	o = normalize(o)
	if o.Status == "" {
		o.Status = StatusInService
	}
	if err := validate(o); err != nil {
		return Listing{}, err
	}
	cn, ln, err := s.names(ctx)
	if err != nil {
		return Listing{}, err
	}
	if err := checkReferences(o, cn, ln); err != nil {
		return Listing{}, err
	}

	now := s.clock().UTC()
	o.Created = &now
	o.CallTotal = 0
	o.CallSeconds = nil

	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		taken, err := s.repo.Identifiers(ctx)
		if err != nil {
			return Listing{}, fmt.Errorf("load identifiers: %w", err)
		}
		o.Identifier, err = s.ids.Next(taken)
		if err != nil {
			return Listing{}, err
		}

		id, err := s.repo.Create(ctx, o)
		if errors.Is(err, ErrIdentifierTaken) {
			logger.From(ctx).Warn("operator identifier collision", "identifier", o.Identifier, "attempt", attempt)
			continue
		}
		if err != nil {
			return Listing{}, fmt.Errorf("create operator: %w", err)
		}
		o.ID = id
		return listing(o, cn, ln), nil
	}
	return Listing{}, ErrDuplicate
}

// Update changes the editable fields; identifier and call counters are kept.
func (s *Service) Update(ctx context.Context, o Operator) (Listing, error) {
	current, err := s.repo.Get(ctx, o.ID)
	if err != nil {
		return Listing{}, err
	}
	o = normalize(o)
	if o.Status == "" {
		o.Status = current.Status
	}
	if err := validate(o); err != nil {
		return Listing{}, err
	}
	cn, ln, err := s.names(ctx)
	if err != nil {
		return Listing{}, err
	}
	if err := checkReferences(o, cn, ln); err != nil {
		return Listing{}, err
	}

	current.FirstName = o.FirstName
	current.Surname = o.Surname
	current.CentreID = o.CentreID
	current.LanguageID = o.LanguageID
	current.Email = o.Email
	current.Mobile = o.Mobile
	current.Status = o.Status
	if err := s.repo.Update(ctx, current); err != nil {
		return Listing{}, err
	}
	return listing(current, cn, ln), nil
}

// Delete removes the operator and returns what was removed.
func (s *Service) Delete(ctx context.Context, id int64) (Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Listing{}, err
	}
	return l, nil
}

func (s *Service) names(ctx context.Context) (map[centres.ID]string, map[languages.ID]string, error) {
	cn, err := s.centres.Names(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("centre names: %w", err)
	}
	ln, err := s.languages.Names(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("language names: %w", err)
	}
	return cn, ln, nil
}

func listing(o Operator, cn map[centres.ID]string, ln map[languages.ID]string) Listing {
	return Listing{
		Operator:     o,
		FullName:     o.FullName(),
		CentreName:   centres.NameOf(cn, o.CentreID),
		LanguageName: languages.NameOf(ln, o.LanguageID),
	}
}

func checkReferences(o Operator, cn map[centres.ID]string, ln map[languages.ID]string) error {
	if _, ok := cn[o.CentreID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCentre, o.CentreID)
	}
	if _, ok := ln[o.LanguageID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLanguage, o.LanguageID)
	}
	return nil
}

func normalize(o Operator) Operator {
	o.FirstName = strings.TrimSpace(o.FirstName)
	o.Surname = strings.TrimSpace(o.Surname)
	o.Email = strings.TrimSpace(o.Email)
	o.Mobile = strings.TrimSpace(o.Mobile)
	o.Status = Status(strings.ToLower(strings.TrimSpace(string(o.Status))))
	return o
}

func validate(o Operator) error {
	if o.FirstName == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidArgument)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: status must be one of ins, sus, oos", ErrInvalidArgument)
	}
	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"first name", o.FirstName, 32},
		{"surname", o.Surname, 32},
		{"email", o.Email, 32},
		{"mobile", o.Mobile, 16},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidArgument, f.name, f.max)
		}
	}
	if o.Email != "" && !strings.Contains(o.Email, "@") {
		return fmt.Errorf("%w: email is not valid", ErrInvalidArgument)
	}
	return nil
}
