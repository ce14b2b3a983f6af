package operators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/pkg/utils"
)

// identifierLockKey serializes identifier allocation across portal processes.
const identifierLockKey int64 = 0x6f70657273

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const operatorColumns = `id, creation, centreid, langid, status::text, identifier, fname, sname, mobile, email,
       calltotal, EXTRACT(EPOCH FROM callduration)::bigint, accessed`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperator(row rowScanner, extra ...any) (Operator, error) {
	var (
		o                                     Operator
		created, accessed                     sql.NullTime
		centreID, langID, callTotal, callSecs sql.NullInt64
		status, ident, fname, sname           sql.NullString
		mobile, email                         sql.NullString
	)
	dest := []any{&o.ID, &created, &centreID, &langID, &status, &ident, &fname, &sname, &mobile, &email,
		&callTotal, &callSecs, &accessed}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Operator{}, err
	}
	if created.Valid {
		o.Created = &created.Time
	}
	if accessed.Valid {
		o.Accessed = &accessed.Time
	}
	if callSecs.Valid {
		o.CallSeconds = &callSecs.Int64
	}
	o.CentreID = centres.ID(centreID.Int64)
	o.LanguageID = languages.ID(langID.Int64)
	o.Status = Status(status.String)
	o.Identifier = ident.String
	o.FirstName = fname.String
	o.Surname = sname.String
	o.Mobile = mobile.String
	o.Email = email.String
	o.CallTotal = callTotal.Int64
	return o, nil
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter, limit, offset int) ([]Operator, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, utils.ContainsPattern(f.Search))
		n := len(args)
		where = append(where, fmt.Sprintf("(fname ILIKE $%d OR sname ILIKE $%d OR identifier ILIKE $%d OR email ILIKE $%d)", n, n, n, n))
	}
	if f.CentreID != nil {
		args = append(args, int64(*f.CentreID))
		where = append(where, fmt.Sprintf("centreid = $%d", len(args)))
	}

	q := "SELECT " + operatorColumns + ", COUNT(*) OVER ()\nFROM operators"
	if len(where) > 0 {
		q += "\nWHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	q += fmt.Sprintf("\nORDER BY id DESC\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Operator
		total int
	)
	for rows.Next() {
		o, err := scanOperator(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan operator: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(out) == 0 && offset > 0 {
		// Past the last page the window count is unavailable.
		if err := r.count(ctx, where, args[:len(args)-2], &total); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *PostgresRepo) count(ctx context.Context, where []string, args []any, total *int) error {
	q := "SELECT COUNT(*) FROM operators"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	return r.db.QueryRowContext(ctx, q, args...).Scan(total)
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Operator, error) {
	o, err := scanOperator(r.db.QueryRowContext(ctx, "SELECT "+operatorColumns+"\nFROM operators\nWHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Operator{}, ErrNotFound
	}
	if err != nil {
		return Operator{}, fmt.Errorf("get operator: %w", err)
	}
	return o, nil
}

func (r *PostgresRepo) Identifiers(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT identifier FROM operators WHERE identifier IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out[s] = struct{}{}
	}
	return out, rows.Err()
}

// Create holds a transaction-scoped advisory lock while it checks and inserts
// the identifier, so concurrent portals cannot hand out the same value. A unique
// index on operators.identifier, where present, is reported the same way.
func (r *PostgresRepo) Create(ctx context.Context, o Operator) (int64, error) {
	var id int64
	err := utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, identifierLockKey); err != nil {
			return fmt.Errorf("lock identifiers: %w", err)
		}
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM operators WHERE identifier = $1)`, o.Identifier,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrIdentifierTaken
		}

		const q = `
INSERT INTO operators (creation, centreid, langid, status, identifier, fname, sname, mobile, email, calltotal, callduration)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NULL)
RETURNING id
`
		return tx.QueryRowContext(ctx, q,
			o.Created, int64(o.CentreID), int64(o.LanguageID), string(o.Status), o.Identifier,
			utils.NullString(o.FirstName), utils.NullString(o.Surname),
			utils.NullString(o.Mobile), utils.NullString(o.Email),
		).Scan(&id)
	})
	if utils.IsUniqueViolation(err) {
		return 0, ErrIdentifierTaken
	}
	return id, err
}

func (r *PostgresRepo) Update(ctx context.Context, o Operator) error {
	const q = `
UPDATE operators
SET centreid = $2, langid = $3, status = $4, fname = $5, sname = $6, mobile = $7, email = $8
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		o.ID, int64(o.CentreID), int64(o.LanguageID), string(o.Status),
		utils.NullString(o.FirstName), utils.NullString(o.Surname),
		utils.NullString(o.Mobile), utils.NullString(o.Email),
	)
	if err != nil {
		return fmt.Errorf("update operator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM operators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete operator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
