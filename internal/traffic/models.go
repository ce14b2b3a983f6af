package traffic

import "time"

// Summary is the network-wide row of the traffic feed.
type Summary struct {
	Traffic      float64 `json:"traffic"`
	AgentsOnline float64 `json:"agents_online"`
	Waiting      float64 `json:"waiting"`
	Calls        float64 `json:"calls"`
	Minutes      float64 `json:"minutes"`
	ACD          float64 `json:"acd"`
}

// CentreRow is one centre's live figures.
type CentreRow struct {
	Name      string  `json:"name"`
	ID        int64   `json:"id"`
	Operators float64 `json:"operators"`
	Languages float64 `json:"languages"`
	Calls     float64 `json:"calls"`
	Minutes   float64 `json:"minutes"`
	ACD       float64 `json:"acd"`
	Traffic   float64 `json:"traffic"`
}

// Snapshot is what the dashboard renders. A failed fetch still yields a
// Snapshot: zeroed figures, no centres, and Error set.
type Snapshot struct {
	Summary   Summary     `json:"summary"`
	Centres   []CentreRow `json:"centres"`
	Error     string      `json:"error,omitempty"`
	FetchedAt time.Time   `json:"fetched_at"`
}

func (s Snapshot) OK() bool { return s.Error == "" }

// Fallback is the zeroed snapshot reported when the traffic service cannot be read.
func Fallback(err error, at time.Time) Snapshot {
	msg := "traffic service unavailable"
	if err != nil {
		msg += ": " + err.Error()
	}
	return Snapshot{Centres: []CentreRow{}, Error: msg, FetchedAt: at}
}
