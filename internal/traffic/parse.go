package traffic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	summaryColumns = 7
	centreColumns  = 8
)

// Parse decodes the /globaldata body: a JSON array whose first element is the
// summary row and whose later elements each hold one or more centre rows.
// Cells may be strings, numbers or null; anything non-numeric counts as zero.
func Parse(body []byte) (Snapshot, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return Snapshot{}, fmt.Errorf("decode globaldata: %w", err)
	}
	if len(top) == 0 {
		return Snapshot{}, errors.New("decode globaldata: empty array")
	}

	out := Snapshot{Centres: []CentreRow{}}

	summaryRows, err := rowsOf(top[0])
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode summary: %w", err)
	}
	if len(summaryRows) > 0 {
		c := pad(summaryRows[0], summaryColumns)
		out.Summary = Summary{
			Traffic:      number(c[0]),
			AgentsOnline: number(c[1]),
			Waiting:      number(c[2]),
			Calls:        number(c[3]),
			Minutes:      number(c[4]),
			ACD:          number(c[5]),
		}
	}

	for i, el := range top[1:] {
		rows, err := rowsOf(el)
		if err != nil {
			return Snapshot{}, fmt.Errorf("decode centre element %d: %w", i+1, err)
		}
		for _, r := range rows {
			c := pad(r, centreColumns)
			out.Centres = append(out.Centres, CentreRow{
				Name:      text(c[0]),
				ID:        int64(number(c[1])),
				Operators: number(c[2]),
				Languages: number(c[3]),
				Calls:     number(c[4]),
				Minutes:   number(c[5]),
				ACD:       number(c[6]),
				Traffic:   number(c[7]),
			})
		}
	}
	return out, nil
}

// rowsOf accepts either a single row of cells or an array of rows.
func rowsOf(raw json.RawMessage) ([][]json.RawMessage, error) {
	if isNull(raw) {
		return nil, nil
	}
	var cells []json.RawMessage
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, nil
	}
	if !isArray(cells[0]) {
		return [][]json.RawMessage{cells}, nil
	}
	rows := make([][]json.RawMessage, 0, len(cells))
	for _, c := range cells {
		var row []json.RawMessage
		if err := json.Unmarshal(c, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func pad(cells []json.RawMessage, n int) []json.RawMessage {
	for len(cells) < n {
		cells = append(cells, nil)
	}
	return cells
}

func number(raw json.RawMessage) float64 {
	if len(raw) == 0 || isNull(raw) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finite(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func text(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}
