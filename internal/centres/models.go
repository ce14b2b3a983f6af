package centres

import "strings"

// ID identifies a row in centres. Other tables hold it as a bare integer with no
// enforced foreign key, so an ID may dangle; resolve display names through NameOf.
type ID int64

// Global is the centre value pay plans use for language-wide (all centres) rows.
const Global ID = 0

// UnknownName is shown wherever a centre reference does not resolve.
const UnknownName = "Unknown Centre"

// Centre is a call-centre location employing agents.
type Centre struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Email        string `json:"email,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Disabled     bool   `json:"disabled"`
	Dedicated    bool   `json:"dedicated"`
	BillName     string `json:"bill_name,omitempty"`
	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
	Address3     string `json:"address3,omitempty"`
	Address4     string `json:"address4,omitempty"`
}

type StatusFilter string

const (
	StatusAny      StatusFilter = ""
	StatusActive   StatusFilter = "active"
	StatusDisabled StatusFilter = "disabled"
)

// ListFilter narrows List. Search matches the name case-insensitively.
type ListFilter struct {
	Search string
	Status StatusFilter
}

func (f ListFilter) matches(c Centre) bool {
	if s := strings.TrimSpace(f.Search); s != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(s)) {
		return false
	}
	switch f.Status {
	case StatusActive:
		return !c.Disabled
	case StatusDisabled:
		return c.Disabled
	}
	return true
}

// NameOf resolves id against a name lookup, falling back to UnknownName.
func NameOf(names map[ID]string, id ID) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return UnknownName
}
