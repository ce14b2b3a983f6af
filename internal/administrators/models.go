package administrators

import (
	"time"

	"centre-portal/internal/centres"
)

// Administrator is a legacy centre administrator account. CentreID 0 means
// the account is not tied to one centre.
type Administrator struct {
	ID            int64      `json:"id"`
	CentreID      centres.ID `json:"centre_id"`
	CentreName    string     `json:"centre_name,omitempty"`
	Name          string     `json:"name"`
	Username      string     `json:"username"`
	Password      string     `json:"-"`
	Email         string     `json:"email,omitempty"`
	Mobile        string     `json:"mobile,omitempty"`
	Accessed      *time.Time `json:"accessed,omitempty"`
	Restricted    bool       `json:"restricted"`
	Notifications bool       `json:"notifications"`
}
