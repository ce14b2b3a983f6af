package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	RoleSuperuser = "superuser"
	RoleStaff     = "staff"
)

var ErrUserNotFound = errors.New("auth: user not found")

// User is a row of the framework-owned auth_user table.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	LastLogin    *time.Time
}

// Role maps the auth_user flags onto the portal's two roles.
// Users that are neither staff nor superuser have no role and cannot sign in.
func (u User) Role() string {
	switch {
	case u.IsSuperuser:
		return RoleSuperuser
	case u.IsStaff:
		return RoleStaff
	default:
		return ""
	}
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type PostgresUsers struct {
	db *sql.DB
}

func NewPostgresUsers(db *sql.DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

const userColumns = `id, username, password, email, is_active, is_staff, is_superuser, last_login`

func (r *PostgresUsers) FindByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM auth_user WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresUsers) FindByID(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM auth_user WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUsers) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE auth_user SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (User, error) {
	var (
		u         User
		email     sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("select auth_user: %w", err)
	}
	u.Email = email.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

// MemoryUsers is an in-process UserRepository for tests and local runs.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[int64]User
}

func NewMemoryUsers(users ...User) *MemoryUsers {
	m := &MemoryUsers{users: make(map[int64]User, len(users))}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *MemoryUsers) FindByUsername(_ context.Context, username string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == strings.TrimSpace(username) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (m *MemoryUsers) FindByID(_ context.Context, id int64) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *MemoryUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	t := at
	u.LastLogin = &t
	m.users[id] = u
	return nil
}
