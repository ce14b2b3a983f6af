package operators

import (
	"time"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
)

type Status string

const (
	StatusInService    Status = "ins"
	StatusSuspended    Status = "sus"
	StatusOutOfService Status = "oos"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInService, StatusSuspended, StatusOutOfService:
		return true
	default:
		return false
	}
}

// PageSize is the number of operators per listing page.
const PageSize = 50

// Operator is an agent taking calls for one centre in one language.
// CentreID and LanguageID are not enforced references and may dangle.
type Operator struct {
	ID          int64        `json:"id"`
	Created     *time.Time   `json:"created,omitempty"`
	CentreID    centres.ID   `json:"centre_id"`
	LanguageID  languages.ID `json:"language_id"`
	Status      Status       `json:"status"`
	Identifier  string       `json:"identifier"`
	FirstName   string       `json:"first_name"`
	Surname     string       `json:"surname"`
	Mobile      string       `json:"mobile,omitempty"`
	Email       string       `json:"email,omitempty"`
	CallTotal   int64        `json:"call_total"`
	CallSeconds *int64       `json:"call_seconds"`
	Accessed    *time.Time   `json:"accessed,omitempty"`
}

func (o Operator) FullName() string {
	switch {
	case o.FirstName == "":
		return o.Surname
	case o.Surname == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.Surname
	}
}

// Listing is an Operator with its centre and language names resolved.
type Listing struct {
	Operator
	FullName     string `json:"full_name"`
	CentreName   string `json:"centre_name"`
	LanguageName string `json:"language_name"`
}

type ListFilter struct {
	// Search matches first name, surname, identifier or email, case-insensitively.
	Search   string
	CentreID *centres.ID
	// Page is 1-based.
	Page int
}

type Page struct {
	Items   []Listing `json:"items"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	Total   int       `json:"total"`
}
