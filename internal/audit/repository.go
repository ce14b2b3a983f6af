package audit

import (
	"context"
	"database/sql"
	"fmt"

	"centre-portal/pkg/utils"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, s Signin) error {
	const q = `
INSERT INTO signins (adminid, tstamp, ipadr, language, clienttime, application)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.db.ExecContext(ctx, q, s.UserID, s.At,
		utils.NullString(s.IPAddress), utils.NullString(s.Language),
		utils.NullString(s.ClientTime), utils.NullString(s.Application))
	if err != nil {
		return fmt.Errorf("insert signin: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Recent(ctx context.Context, userID int64, limit int) ([]Signin, error) {
	const q = `
SELECT id, adminid, tstamp, ipadr, language, clienttime, application
FROM signins
WHERE adminid = $1
ORDER BY tstamp DESC NULLS LAST, id DESC
LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Signin{}
	for rows.Next() {
		var (
			s                     Signin
			at                    sql.NullTime
			ip, lang, client, app sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.UserID, &at, &ip, &lang, &client, &app); err != nil {
			return nil, fmt.Errorf("scan signin: %w", err)
		}
		s.At = at.Time
		s.IPAddress, s.Language, s.ClientTime, s.Application = ip.String, lang.String, client.String, app.String
		out = append(out, s)
	}
	return out, rows.Err()
}
