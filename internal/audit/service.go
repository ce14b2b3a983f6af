package audit

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Repository is append-only; there is no Update or Delete.
type Repository interface {
	Append(ctx context.Context, s Signin) error
	Recent(ctx context.Context, userID int64, limit int) ([]Signin, error)
}

// Service records staff sign-ins. Callers treat recording as best-effort.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidSignin = errors.New("audit: invalid signin")

const maxRecent = 100

func (s *Service) RecordSignin(ctx context.Context, in Signin) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if in.UserID <= 0 {
		return ErrInvalidSignin
	}
	if in.At.IsZero() {
		in.At = s.clock().UTC()
	}
	in.IPAddress = truncate(in.IPAddress, maxIPAddress)
	in.Language = truncate(in.Language, maxLanguage)
	in.ClientTime = truncate(in.ClientTime, maxClientTime)
	in.Application = truncate(in.Application, maxApplication)
	return s.repo.Append(ctx, in)
}

// Recent returns the newest sign-ins for userID, newest first.
func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]Signin, error) {
	if userID <= 0 {
		return nil, ErrInvalidSignin
	}
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}
	return s.repo.Recent(ctx, userID, limit)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
