package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

// PostgresRepo reads and writes the payplan table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const planColumns = `id, COALESCE(centreid, 0), COALESCE(langid, 0), acd, rate`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var (
		p         Plan
		threshold sql.NullInt64
		rate      sql.NullFloat64
	)
	if err := row.Scan(&p.ID, &p.CentreID, &p.LanguageID, &threshold, &rate); err != nil {
		return Plan{}, err
	}
	p.Threshold = threshold.Int64
	p.Rate = rate.Float64
	return p, nil
}

func (r *PostgresRepo) query(ctx context.Context, q string, args ...any) ([]Plan, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pay plan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) FindLadder(ctx context.Context, languageID languages.ID, centreID centres.ID) ([]Plan, error) {
	const q = `
SELECT ` + planColumns + `
FROM payplan
WHERE langid = $1 AND COALESCE(centreid, 0) = $2
  AND acd IS NOT NULL AND rate IS NOT NULL
ORDER BY acd ASC, id ASC
`
	return r.query(ctx, q, int64(languageID), int64(centreID))
}

func (r *PostgresRepo) List(ctx context.Context, f PlanFilter) ([]Plan, error) {
	var (
		where []string
		args  []any
	)
	if f.LanguageID != nil {
		args = append(args, int64(*f.LanguageID))
		where = append(where, fmt.Sprintf("langid = $%d", len(args)))
	}
	if f.CentreID != nil {
		args = append(args, int64(*f.CentreID))
		where = append(where, fmt.Sprintf("COALESCE(centreid, 0) = $%d", len(args)))
	}
	q := "SELECT " + planColumns + "\nFROM payplan"
	if len(where) > 0 {
		q += "\nWHERE " + strings.Join(where, " AND ")
	}
	q += "\nORDER BY langid, centreid, acd, id"
	return r.query(ctx, q, args...)
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, "SELECT "+planColumns+"\nFROM payplan\nWHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("get pay plan: %w", err)
	}
	return p, nil
}

func (r *PostgresRepo) Create(ctx context.Context, p Plan) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO payplan (centreid, langid, acd, rate) VALUES ($1, $2, $3, $4) RETURNING id`,
		int64(p.CentreID), int64(p.LanguageID), p.Threshold, p.Rate,
	).Scan(&id)
	return id, err
}

func (r *PostgresRepo) Update(ctx context.Context, p Plan) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payplan SET centreid = $2, langid = $3, acd = $4, rate = $5 WHERE id = $1`,
		p.ID, int64(p.CentreID), int64(p.LanguageID), p.Threshold, p.Rate,
	)
	if err != nil {
		return fmt.Errorf("update pay plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payplan WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pay plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
