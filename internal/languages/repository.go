package languages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"centre-portal/pkg/utils"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) List(ctx context.Context) ([]Language, error) {
	const q = `
SELECT id, name, abbreviation
FROM languages
ORDER BY name, id
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	out := []Language{}
	for rows.Next() {
		var (
			l          Language
			name, abbr sql.NullString
		)
		if err := rows.Scan(&l.ID, &name, &abbr); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		l.Name, l.Abbreviation = name.String, abbr.String
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id ID) (Language, error) {
	const q = `
SELECT id, name, abbreviation
FROM languages
WHERE id = $1
`
	var (
		l          Language
		name, abbr sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &name, &abbr)
	if errors.Is(err, sql.ErrNoRows) {
		return Language{}, ErrNotFound
	}
	if err != nil {
		return Language{}, fmt.Errorf("get language: %w", err)
	}
	l.Name, l.Abbreviation = name.String, abbr.String
	return l, nil
}

func (r *PostgresRepo) Create(ctx context.Context, l Language) (ID, error) {
	var id ID
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO languages (name, abbreviation) VALUES ($1, $2) RETURNING id`,
		utils.NullString(l.Name), utils.NullString(l.Abbreviation),
	).Scan(&id)
	return id, err
}

func (r *PostgresRepo) Update(ctx context.Context, l Language) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE languages SET name = $2, abbreviation = $3 WHERE id = $1`,
		l.ID, utils.NullString(l.Name), utils.NullString(l.Abbreviation),
	)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete language: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
