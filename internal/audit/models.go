package audit

import "time"

// Signin is one row of the append-only signins table.
//
// Invariants:
// - Rows are never updated or deleted.
// - Text fields are truncated to their column widths rather than rejected.
type Signin struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	At          time.Time `json:"at"`
	IPAddress   string    `json:"ip_address,omitempty"`
	Language    string    `json:"language,omitempty"`
	ClientTime  string    `json:"client_time,omitempty"`
	Application string    `json:"application,omitempty"`
}

// Column widths of the signins table.
const (
	maxIPAddress   = 32
	maxLanguage    = 32
	maxClientTime  = 128
	maxApplication = 256
)
