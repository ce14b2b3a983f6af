package languages

// ID identifies a row in languages. Like centre ids, references to it are not enforced and may dangle.
type ID int64

// UnknownName is shown wherever a language reference does not resolve.
const UnknownName = "Unknown Language"

type Language struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// NameOf resolves id against a name lookup, falling back to UnknownName.
func NameOf(names map[ID]string, id ID) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return UnknownName
}
