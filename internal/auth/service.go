package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"centre-portal/internal/audit"
	"centre-portal/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrThrottled          = errors.New("auth: too many login attempts")
	ErrInvalidToken       = errors.New("auth: invalid token")
)

// SigninRecorder is satisfied by *audit.Service.
type SigninRecorder interface {
	RecordSignin(ctx context.Context, s audit.Signin) error
}

type Service struct {
	users    UserRepository
	tokens   *Manager
	signins  SigninRecorder
	throttle *Throttle
	clock    func() time.Time
}

func NewService(users UserRepository, tokens *Manager, signins SigninRecorder, throttle *Throttle) *Service {
	return &Service{users: users, tokens: tokens, signins: signins, throttle: throttle, clock: time.Now}
}

type LoginInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Language    string `json:"language"`
	ClientTime  string `json:"client_time"`
	Application string `json:"application"`

	// IPAddress is taken from the request, never from the body.
	IPAddress string `json:"-"`
}

type LoginResult struct {
	Tokens   TokenPair `json:"tokens"`
	Identity Identity  `json:"user"`
}

func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if s.throttle != nil && !s.throttle.Allow(in.IPAddress) {
		return LoginResult{}, ErrThrottled
	}

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !u.IsActive || u.Role() == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := VerifyDjangoPassword(in.Password, u.PasswordHash)
	if err != nil {
		logger.From(ctx).Warn("password hash not verifiable", "user_id", u.ID, "err", err)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.clock()
	id := Identity{UserID: u.ID, Username: u.Username, Role: u.Role()}
	pair, err := s.tokens.IssuePair(now, id)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.users.TouchLastLogin(ctx, u.ID, now.UTC()); err != nil {
		logger.From(ctx).Warn("update last_login failed", "user_id", u.ID, "err", err)
	}
	if s.signins != nil {
		err := s.signins.RecordSignin(ctx, audit.Signin{
			UserID:      u.ID,
			At:          now.UTC(),
			IPAddress:   in.IPAddress,
			Language:    in.Language,
			ClientTime:  in.ClientTime,
			Application: in.Application,
		})
		if err != nil {
			logger.From(ctx).Warn("record signin failed", "user_id", u.ID, "err", err)
		}
	}

	return LoginResult{Tokens: pair, Identity: id}, nil
}

// Refresh exchanges a refresh token for a new pair. The user is re-read so a
// deactivated or demoted account cannot keep refreshing.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (LoginResult, error) {
	now := s.clock()
	claims, err := s.tokens.Verify(strings.TrimSpace(refreshToken), TokenTypeRefresh, now)
	if err != nil {
		return LoginResult{}, ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{}, ErrInvalidToken
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !u.IsActive || u.Role() == "" {
		return LoginResult{}, ErrInvalidToken
	}

	id := Identity{UserID: u.ID, Username: u.Username, Role: u.Role()}
	pair, err := s.tokens.IssuePair(now, id)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Tokens: pair, Identity: id}, nil
}
