package pricing

import (
	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

// Plan is one payplan row: from Threshold seconds of average call duration
// upward, agents are paid Rate per minute. CentreID centres.Global marks a
// language-wide row used when a centre has no ladder of its own.
type Plan struct {
	ID         int64        `json:"id"`
	CentreID   centres.ID   `json:"centre_id"`
	LanguageID languages.ID `json:"language_id"`
	Threshold  int64        `json:"acd"`
	Rate       float64      `json:"rate"`
}

// Billing is the outcome of rate resolution. Both fields are nil when no
// billing applies; that is a valid result, not an error.
type Billing struct {
	Rate *float64 `json:"rate"`
	Due  *float64 `json:"due"`
}

// Ladder is the effective set of plans for a (language, centre) pair.
type Ladder struct {
	LanguageID languages.ID `json:"language_id"`
	CentreID   centres.ID   `json:"centre_id"`
	// Global is true when the centre has no rows and the language-wide ladder applies.
	Global bool   `json:"global"`
	Plans  []Plan `json:"plans"`
}

type PlanFilter struct {
	LanguageID *languages.ID
	CentreID   *centres.ID
}
