package languages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrNotFound        = errors.New("language not found")
	ErrInvalidArgument = errors.New("invalid language")
)

type Repository interface {
	List(ctx context.Context) ([]Language, error)
	Get(ctx context.Context, id ID) (Language, error)
	Create(ctx context.Context, l Language) (ID, error)
	Update(ctx context.Context, l Language) error
	Delete(ctx context.Context, id ID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// List returns all languages ordered by name.
func (s *Service) List(ctx context.Context) ([]Language, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id ID) (Language, error) {
	if id <= 0 {
		return Language{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, l Language) (Language, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Abbreviation = strings.TrimSpace(l.Abbreviation)
	if err := validate(l); err != nil {
		return Language{}, err
	}
	id, err := s.repo.Create(ctx, l)
	if err != nil {
		return Language{}, fmt.Errorf("create language: %w", err)
	}
	l.ID = id
	return l, nil
}

func (s *Service) Update(ctx context.Context, l Language) (Language, error) {
	if l.ID <= 0 {
		return Language{}, ErrNotFound
	}
	l.Name = strings.TrimSpace(l.Name)
	l.Abbreviation = strings.TrimSpace(l.Abbreviation)
	if err := validate(l); err != nil {
		return Language{}, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return Language{}, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id ID) (Language, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return Language{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Language{}, err
	}
	return l, nil
}

// Names returns every language name keyed by id.
func (s *Service) Names(ctx context.Context) (map[ID]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[ID]string, len(all))
	for _, l := range all {
		out[l.ID] = l.Name
	}
	return out, nil
}

func validate(l Language) error {
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(l.Name) > 32 || utf8.RuneCountInString(l.Abbreviation) > 32 {
		return fmt.Errorf("%w: name and abbreviation must be at most 32 characters", ErrInvalidArgument)
	}
	return nil
}
