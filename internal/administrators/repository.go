package administrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"centre-portal/internal/centres"
	"centre-portal/pkg/utils"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

// The password column is never selected.
const adminColumns = `id, centreid, name, username, email, mobile, accessed, restricted, notifications`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdministrator(row rowScanner) (Administrator, error) {
	var (
		a                             Administrator
		centreID                      sql.NullInt64
		name, username, email, mobile sql.NullString
		accessed                      sql.NullTime
		restricted, notifications     sql.NullBool
	)
	if err := row.Scan(&a.ID, &centreID, &name, &username, &email, &mobile, &accessed, &restricted, &notifications); err != nil {
		return Administrator{}, err
	}
	a.CentreID = centres.ID(centreID.Int64)
	a.Name = name.String
	a.Username = username.String
	a.Email = email.String
	a.Mobile = mobile.String
	if accessed.Valid {
		a.Accessed = &accessed.Time
	}
	a.Restricted = restricted.Bool
	a.Notifications = notifications.Bool
	return a, nil
}

func (r *PostgresRepo) List(ctx context.Context, search string) ([]Administrator, error) {
	q := "SELECT " + adminColumns + "\nFROM administrators"
	var args []any
	if search != "" {
		args = append(args, utils.ContainsPattern(search))
		q += "\nWHERE name ILIKE $1 OR username ILIKE $1 OR email ILIKE $1"
	}
	q += "\nORDER BY username, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Administrator{}
	for rows.Next() {
		a, err := scanAdministrator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan administrator: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Administrator, error) {
	a, err := scanAdministrator(r.db.QueryRowContext(ctx, "SELECT "+adminColumns+"\nFROM administrators\nWHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Administrator{}, ErrNotFound
	}
	if err != nil {
		return Administrator{}, fmt.Errorf("get administrator: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM administrators WHERE LOWER(username) = LOWER($1) AND id <> $2)`,
		username, exceptID,
	).Scan(&taken)
	return taken, err
}

func (r *PostgresRepo) Create(ctx context.Context, a Administrator) (int64, error) {
	const q = `
INSERT INTO administrators (centreid, name, username, password, email, mobile, restricted, notifications)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		int64(a.CentreID), utils.NullString(a.Name), a.Username, a.Password,
		utils.NullString(a.Email), utils.NullString(a.Mobile), a.Restricted, a.Notifications,
	).Scan(&id)
	if utils.IsUniqueViolation(err) {
		return 0, ErrDuplicate
	}
	return id, err
}

func (r *PostgresRepo) Update(ctx context.Context, a Administrator) error {
	const q = `
UPDATE administrators
SET centreid = $2, name = $3, username = $4, email = $5, mobile = $6, restricted = $7, notifications = $8,
    password = COALESCE($9, password)
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		a.ID, int64(a.CentreID), utils.NullString(a.Name), a.Username,
		utils.NullString(a.Email), utils.NullString(a.Mobile), a.Restricted, a.Notifications,
		utils.NullString(a.Password),
	)
	if utils.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update administrator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM administrators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete administrator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
