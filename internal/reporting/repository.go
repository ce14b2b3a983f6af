package reporting

import (
	"context"
	"database/sql"
	"fmt"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

// PostgresRepo aggregates the legacy sessions table. Interval columns are
// summed in Postgres and returned as seconds.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const sessionAggregates = `COUNT(s.id),
       COALESCE(SUM(s.calltotal), 0),
       COALESCE(EXTRACT(EPOCH FROM SUM(s.callduration)), 0)::float8`

func (r *PostgresRepo) CentreTotals(ctx context.Context, rg Range) ([]CentreSummaryRow, error) {
	const q = `
SELECT c.id, COALESCE(c.name, ''),
       COUNT(DISTINCT o.langid), COUNT(DISTINCT o.id),
       ` + sessionAggregates + `
FROM sessions s
JOIN operators o ON o.id = s.operid
JOIN centres c ON c.id = o.centreid
JOIN languages l ON l.id = o.langid
WHERE s.start >= $1 AND s.start < $2
GROUP BY c.id, c.name
ORDER BY c.name, c.id
`
	rows, err := r.db.QueryContext(ctx, q, rg.Start, rg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CentreSummaryRow
	for rows.Next() {
		var row CentreSummaryRow
		if err := rows.Scan(&row.CentreID, &row.CentreName, &row.Languages, &row.Agents,
			&row.Sessions, &row.Calls, &row.CallSeconds); err != nil {
			return nil, fmt.Errorf("scan centre totals: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) LanguageTotals(ctx context.Context, rg Range, centreID centres.ID) ([]LanguageSummaryRow, error) {
	const q = `
SELECT l.id, COALESCE(l.name, ''), COUNT(DISTINCT o.id),
       ` + sessionAggregates + `
FROM sessions s
JOIN operators o ON o.id = s.operid
JOIN centres c ON c.id = o.centreid
JOIN languages l ON l.id = o.langid
WHERE s.start >= $1 AND s.start < $2 AND c.id = $3
GROUP BY l.id, l.name
ORDER BY l.name, l.id
`
	rows, err := r.db.QueryContext(ctx, q, rg.Start, rg.End, int64(centreID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LanguageSummaryRow
	for rows.Next() {
		var row LanguageSummaryRow
		if err := rows.Scan(&row.LanguageID, &row.LanguageName, &row.Agents,
			&row.Sessions, &row.Calls, &row.CallSeconds); err != nil {
			return nil, fmt.Errorf("scan language totals: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) AgentTotals(ctx context.Context, rg Range, centreID centres.ID, languageID languages.ID) ([]AgentSummaryRow, error) {
	const q = `
SELECT o.id, COALESCE(o.identifier, ''), TRIM(CONCAT(o.fname, ' ', o.sname)),
       ` + sessionAggregates + `
FROM sessions s
JOIN operators o ON o.id = s.operid
JOIN centres c ON c.id = o.centreid
JOIN languages l ON l.id = o.langid
WHERE s.start >= $1 AND s.start < $2 AND c.id = $3 AND l.id = $4
  AND s.duration IS NOT NULL
GROUP BY o.id, o.identifier, o.fname, o.sname
ORDER BY o.fname, o.sname, o.id
`
	rows, err := r.db.QueryContext(ctx, q, rg.Start, rg.End, int64(centreID), int64(languageID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AgentSummaryRow
	for rows.Next() {
		var row AgentSummaryRow
		if err := rows.Scan(&row.OperatorID, &row.Identifier, &row.FullName,
			&row.Sessions, &row.Calls, &row.CallSeconds); err != nil {
			return nil, fmt.Errorf("scan agent totals: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) AgentSessions(ctx context.Context, rg Range, operatorID int64) ([]SessionRow, error) {
	const q = `
SELECT s.id, s.start,
       COALESCE(EXTRACT(EPOCH FROM s.duration), 0)::float8,
       COALESCE(EXTRACT(EPOCH FROM s.callduration), 0)::float8,
       COALESCE(EXTRACT(EPOCH FROM s.holdduration), 0)::float8,
       COALESCE(s.calltotal, 0), COALESCE(s.missed, 0),
       COALESCE(d.username, '')
FROM sessions s
JOIN operators o ON o.id = s.operid
LEFT JOIN devices d ON d.id = s.devid
WHERE o.id = $1 AND s.start >= $2 AND s.start < $3
  AND s.duration IS NOT NULL
ORDER BY s.start, s.id
`
	rows, err := r.db.QueryContext(ctx, q, operatorID, rg.Start, rg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var row SessionRow
		if err := rows.Scan(&row.SessionID, &row.Start, &row.DurationSeconds, &row.CallSeconds,
			&row.HoldSeconds, &row.Calls, &row.Missed, &row.DeviceName); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ActiveSessions uses outer joins so a dangling reference still lists the session.
func (r *PostgresRepo) ActiveSessions(ctx context.Context, centreID *centres.ID) ([]ActiveSessionRow, error) {
	q := `
SELECT s.id, COALESCE(o.id, 0), COALESCE(o.identifier, ''), TRIM(CONCAT(o.fname, ' ', o.sname)),
       COALESCE(o.centreid, 0), COALESCE(c.name, ''),
       COALESCE(o.langid, 0), COALESCE(l.name, ''),
       COALESCE(d.username, ''), s.start,
       COALESCE(s.calltotal, 0), COALESCE(s.missed, 0), COALESCE(s.waiting, 0)
FROM sessions s
LEFT JOIN operators o ON o.id = s.operid
LEFT JOIN centres c ON c.id = o.centreid
LEFT JOIN languages l ON l.id = o.langid
LEFT JOIN devices d ON d.id = s.devid
WHERE s.duration IS NULL AND s.start IS NOT NULL`
	var args []any
	if centreID != nil {
		args = append(args, int64(*centreID))
		q += " AND o.centreid = $1"
	}
	q += "\nORDER BY s.start"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActiveSessionRow
	for rows.Next() {
		var row ActiveSessionRow
		if err := rows.Scan(&row.SessionID, &row.OperatorID, &row.Identifier, &row.FullName,
			&row.CentreID, &row.CentreName, &row.LanguageID, &row.LanguageName,
			&row.DeviceName, &row.Start, &row.Calls, &row.Missed, &row.Waiting); err != nil {
			return nil, fmt.Errorf("scan active session: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
