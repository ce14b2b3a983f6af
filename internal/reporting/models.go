package reporting

import (
	"time"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

// UnknownDevice names a session whose device does not resolve.
const UnknownDevice = "Unknown Device"

// Range is an inclusive span of calendar days in the reporting timezone.
// Start is midnight of the first day and End is midnight after the last day,
// so sessions match when Start <= start < End.
type Range struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Aggregates are the counters every granularity shares.
type Aggregates struct {
	Sessions    int64   `json:"sessions"`
	Calls       int64   `json:"calls"`
	CallSeconds float64 `json:"call_seconds"`
	ACD         float64 `json:"acd"`
}

type CentreSummaryRow struct {
	CentreID   centres.ID `json:"centre_id"`
	CentreName string     `json:"centre_name"`
	Languages  int64      `json:"languages"`
	Agents     int64      `json:"agents"`
	Aggregates
}

type CentreReport struct {
	Range  Range              `json:"range"`
	Rows   []CentreSummaryRow `json:"rows"`
	Totals Aggregates         `json:"totals"`
}

type LanguageSummaryRow struct {
	LanguageID   languages.ID `json:"language_id"`
	LanguageName string       `json:"language_name"`
	Agents       int64        `json:"agents"`
	Aggregates
	Rate *float64 `json:"rate"`
	Due  *float64 `json:"due"`
}

type LanguageTotals struct {
	Agents int64 `json:"agents"`
	Aggregates
	TotalDue float64 `json:"total_due"`
}

type LanguageReport struct {
	Range      Range                `json:"range"`
	CentreID   centres.ID           `json:"centre_id"`
	CentreName string               `json:"centre_name"`
	Rows       []LanguageSummaryRow `json:"rows"`
	Totals     LanguageTotals       `json:"totals"`
}

// AgentSummaryRow covers closed sessions only.
type AgentSummaryRow struct {
	OperatorID int64  `json:"operator_id"`
	Identifier string `json:"identifier"`
	FullName   string `json:"full_name"`
	Aggregates
}

type AgentReport struct {
	Range        Range             `json:"range"`
	CentreID     centres.ID        `json:"centre_id"`
	CentreName   string            `json:"centre_name"`
	LanguageID   languages.ID      `json:"language_id"`
	LanguageName string            `json:"language_name"`
	Rows         []AgentSummaryRow `json:"rows"`
	Totals       Aggregates        `json:"totals"`
}

// SessionRow is one closed session of a single agent.
type SessionRow struct {
	SessionID       int64     `json:"session_id"`
	Start           time.Time `json:"start"`
	DurationSeconds float64   `json:"duration_seconds"`
	CallSeconds     float64   `json:"call_seconds"`
	HoldSeconds     float64   `json:"hold_seconds"`
	Calls           int64     `json:"calls"`
	Missed          int64     `json:"missed"`
	ACD             float64   `json:"acd"`
	DeviceName      string    `json:"device_name"`
}

type SessionReport struct {
	Range      Range        `json:"range"`
	OperatorID int64        `json:"operator_id"`
	Rows       []SessionRow `json:"rows"`
	Totals     Aggregates   `json:"totals"`
}

// ActiveSessionRow is a session still in progress (no duration yet).
type ActiveSessionRow struct {
	SessionID      int64        `json:"session_id"`
	OperatorID     int64        `json:"operator_id"`
	Identifier     string       `json:"identifier"`
	FullName       string       `json:"full_name"`
	CentreID       centres.ID   `json:"centre_id"`
	CentreName     string       `json:"centre_name"`
	LanguageID     languages.ID `json:"language_id"`
	LanguageName   string       `json:"language_name"`
	DeviceName     string       `json:"device_name"`
	Start          time.Time    `json:"start"`
	ElapsedSeconds int64        `json:"elapsed_seconds"`
	Calls          int64        `json:"calls"`
	Missed         int64        `json:"missed"`
	Waiting        int64        `json:"waiting"`
}

func averageCallDuration(calls int64, callSeconds float64) float64 {
	if calls <= 0 {
		return 0
	}
	return callSeconds / float64(calls)
}

func (a *Aggregates) add(b Aggregates) {
	a.Sessions += b.Sessions
	a.Calls += b.Calls
	a.CallSeconds += b.CallSeconds
}

func (a *Aggregates) finish() {
	a.ACD = averageCallDuration(a.Calls, a.CallSeconds)
}
