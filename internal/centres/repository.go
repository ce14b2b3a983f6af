package centres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"centre-portal/pkg/utils"
)

// PostgresRepo reads and writes the legacy centres table. Every column is nullable.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const centreColumns = `id, name, abbreviation, contact, email, mobile, disabled, dedicated,
       billname, address1, address2, address3, address4`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCentre(row rowScanner) (Centre, error) {
	var (
		c                                                Centre
		name, abbr, contact, email, mobile               sql.NullString
		billName, address1, address2, address3, address4 sql.NullString
		disabled, dedicated                              sql.NullBool
	)
	if err := row.Scan(&c.ID, &name, &abbr, &contact, &email, &mobile, &disabled, &dedicated,
		&billName, &address1, &address2, &address3, &address4); err != nil {
		return Centre{}, err
	}
	c.Name = name.String
	c.Abbreviation = abbr.String
	c.Contact = contact.String
	c.Email = email.String
	c.Mobile = mobile.String
	c.Disabled = disabled.Bool
	c.Dedicated = dedicated.Bool
	c.BillName = billName.String
	c.Address1 = address1.String
	c.Address2 = address2.String
	c.Address3 = address3.String
	c.Address4 = address4.String
	return c, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Centre, error) {
	var (
		where []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, utils.ContainsPattern(s))
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	switch f.Status {
	case StatusActive:
		where = append(where, "COALESCE(disabled, FALSE) = FALSE")
	case StatusDisabled:
		where = append(where, "disabled = TRUE")
	}

	q := "SELECT " + centreColumns + "\nFROM centres"
	if len(where) > 0 {
		q += "\nWHERE " + strings.Join(where, " AND ")
	}
	q += "\nORDER BY name, id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list centres: %w", err)
	}
	defer rows.Close()

	out := []Centre{}
	for rows.Next() {
		c, err := scanCentre(rows)
		if err != nil {
			return nil, fmt.Errorf("scan centre: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id ID) (Centre, error) {
	q := "SELECT " + centreColumns + "\nFROM centres\nWHERE id = $1"
	c, err := scanCentre(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Centre{}, ErrNotFound
	}
	if err != nil {
		return Centre{}, fmt.Errorf("get centre: %w", err)
	}
	return c, nil
}

func (r *PostgresRepo) Create(ctx context.Context, c Centre) (ID, error) {
	const q = `
INSERT INTO centres (
  name, abbreviation, contact, email, mobile, disabled, dedicated,
  billname, address1, address2, address3, address4
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
RETURNING id
`
	var id ID
	err := r.db.QueryRowContext(ctx, q,
		utils.NullString(c.Name),
		utils.NullString(c.Abbreviation),
		utils.NullString(c.Contact),
		utils.NullString(c.Email),
		utils.NullString(c.Mobile),
		c.Disabled,
		c.Dedicated,
		utils.NullString(c.BillName),
		utils.NullString(c.Address1),
		utils.NullString(c.Address2),
		utils.NullString(c.Address3),
		utils.NullString(c.Address4),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepo) Update(ctx context.Context, c Centre) error {
	const q = `
UPDATE centres SET
  name = $2, abbreviation = $3, contact = $4, email = $5, mobile = $6,
  disabled = $7, dedicated = $8, billname = $9,
  address1 = $10, address2 = $11, address3 = $12, address4 = $13
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		c.ID,
		utils.NullString(c.Name),
		utils.NullString(c.Abbreviation),
		utils.NullString(c.Contact),
		utils.NullString(c.Email),
		utils.NullString(c.Mobile),
		c.Disabled,
		c.Dedicated,
		utils.NullString(c.BillName),
		utils.NullString(c.Address1),
		utils.NullString(c.Address2),
		utils.NullString(c.Address3),
		utils.NullString(c.Address4),
	)
	if err != nil {
		return fmt.Errorf("update centre: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepo) Delete(ctx context.Context, id ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM centres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete centre: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
