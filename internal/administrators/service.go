package administrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"centre-portal/internal/centres"
)

var (
	ErrNotFound        = errors.New("administrator not found")
	ErrInvalidArgument = errors.New("invalid administrator")
	ErrDuplicate       = errors.New("username already in use")
	ErrUnknownCentre   = errors.New("centre does not exist")
)

type Repository interface {
	List(ctx context.Context, search string) ([]Administrator, error)
	Get(ctx context.Context, id int64) (Administrator, error)
	// UsernameTaken reports whether another account (id != exceptID) holds username.
	UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error)
	Create(ctx context.Context, a Administrator) (int64, error)
	// Update leaves the stored password untouched when a.Password is empty.
	Update(ctx context.Context, a Administrator) error
	Delete(ctx context.Context, id int64) error
}

type CentreNames interface {
	Names(ctx context.Context) (map[centres.ID]string, error)
}

type Service struct {
	repo    Repository
	centres CentreNames
}

func NewService(repo Repository, c CentreNames) *Service {
	return &Service{repo: repo, centres: c}
}

func (s *Service) List(ctx context.Context, search string) ([]Administrator, error) {
	out, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list administrators: %w", err)
	}
	names, err := s.centres.Names(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].CentreName = centreName(names, out[i].CentreID)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Administrator, error) {
	if id <= 0 {
		return Administrator{}, ErrNotFound
	}
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Administrator{}, err
	}
	names, err := s.centres.Names(ctx)
	if err != nil {
		return Administrator{}, err
	}
	a.CentreName = centreName(names, a.CentreID)
	return a, nil
}

func (s *Service) Create(ctx context.Context, a Administrator) (Administrator, error) {
	a = normalize(a)
	if a.Password == "" {
		return Administrator{}, fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	if err := s.check(ctx, a); err != nil {
		return Administrator{}, err
	}
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return Administrator{}, fmt.Errorf("create administrator: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, a Administrator) (Administrator, error) {
	if a.ID <= 0 {
		return Administrator{}, ErrNotFound
	}
	if _, err := s.repo.Get(ctx, a.ID); err != nil {
		return Administrator{}, err
	}
	a = normalize(a)
	if err := s.check(ctx, a); err != nil {
		return Administrator{}, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return Administrator{}, err
	}
	return s.Get(ctx, a.ID)
}

func (s *Service) Delete(ctx context.Context, id int64) (Administrator, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Administrator{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Administrator{}, err
	}
	return a, nil
}

func (s *Service) check(ctx context.Context, a Administrator) error {
	if err := validate(a); err != nil {
		return err
	}
	if a.CentreID != centres.Global {
		names, err := s.centres.Names(ctx)
		if err != nil {
			return err
		}
		if _, ok := names[a.CentreID]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownCentre, a.CentreID)
		}
	}
	taken, err := s.repo.UsernameTaken(ctx, a.Username, a.ID)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicate, a.Username)
	}
	return nil
}

func centreName(names map[centres.ID]string, id centres.ID) string {
	if id == centres.Global {
		return ""
	}
	return centres.NameOf(names, id)
}

func normalize(a Administrator) Administrator {
	a.Name = strings.TrimSpace(a.Name)
	a.Username = strings.TrimSpace(a.Username)
	a.Email = strings.TrimSpace(a.Email)
	a.Mobile = strings.TrimSpace(a.Mobile)
	return a
}

func validate(a Administrator) error {
	if a.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	if a.CentreID < 0 {
		return fmt.Errorf("%w: centre must not be negative", ErrInvalidArgument)
	}
	for _, f := range []struct{ name, value string }{
		{"name", a.Name},
		{"username", a.Username},
		{"password", a.Password},
		{"email", a.Email},
		{"mobile", a.Mobile},
	} {
		if utf8.RuneCountInString(f.value) > 32 {
			return fmt.Errorf("%w: %s must be at most 32 characters", ErrInvalidArgument, f.name)
		}
	}
	return nil
}
