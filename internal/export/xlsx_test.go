package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"centre-portal/internal/reporting"
)

func readSheet(t *testing.T, b []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	return rows
}

func TestLanguageReport_Workbook(t *testing.T) {
	rate, due := 1.5, 22.5
	rep := reporting.LanguageReport{
		Range:      reporting.Range{From: "2025-03-01", To: "2025-03-31"},
		CentreName: "Manila",
		Rows: []reporting.LanguageSummaryRow{
			{LanguageName: "English", Agents: 1, Aggregates: reporting.Aggregates{Sessions: 2, Calls: 3, CallSeconds: 900, ACD: 300}, Rate: &rate, Due: &due},
			{LanguageName: "Tagalog", Agents: 1, Aggregates: reporting.Aggregates{Sessions: 1, Calls: 4, CallSeconds: 400, ACD: 100}},
		},
		Totals: reporting.LanguageTotals{Agents: 2, Aggregates: reporting.Aggregates{Sessions: 3, Calls: 7, CallSeconds: 1300}, TotalDue: 22.5},
	}
	var buf bytes.Buffer
	if err := LanguageReport(&buf, rep); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rows := readSheet(t, buf.Bytes(), "Manila")
	if rows[0][0] != "2025-03-01 to 2025-03-31" {
		t.Fatalf("unexpected title row %v", rows[0])
	}
	if rows[2][0] != "Language" || rows[2][7] != "Due" {
		t.Fatalf("unexpected header %v", rows[2])
	}
	if rows[3][0] != "English" || rows[3][6] != "1.5" || rows[3][7] != "22.5" {
		t.Fatalf("unexpected english row %v", rows[3])
	}
	if len(rows[4]) > 6 && rows[4][6] != "" {
		t.Fatalf("tagalog should have no rate, got %v", rows[4])
	}
	if rows[5][0] != "Total" || rows[5][7] != "22.5" {
		t.Fatalf("unexpected totals row %v", rows[5])
	}
}

func TestCentreReport_Workbook(t *testing.T) {
	rep := reporting.CentreReport{
		Range: reporting.Range{From: "2025-03-01", To: "2025-03-01"},
		Rows: []reporting.CentreSummaryRow{
			{CentreName: "Cebu", Languages: 1, Agents: 2, Aggregates: reporting.Aggregates{Sessions: 3, Calls: 10, CallSeconds: 600, ACD: 60}},
		},
		Totals: reporting.Aggregates{Sessions: 3, Calls: 10, CallSeconds: 600, ACD: 60},
	}
	var buf bytes.Buffer
	if err := CentreReport(&buf, rep); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rows := readSheet(t, buf.Bytes(), "Centres")
	if len(rows) != 5 || rows[3][0] != "Cebu" || rows[3][5] != "10" || rows[4][0] != "Total" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestSheetName(t *testing.T) {
	if got := sheetName("North/South [Main]"); got != "NorthSouth Main" {
		t.Fatalf("unexpected sheet name %q", got)
	}
	if got := sheetName(""); got != "Report" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := sheetName("abcdefghijklmnopqrstuvwxyz0123456789"); len(got) != 31 {
		t.Fatalf("expected 31 characters, got %d", len(got))
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("languages", reporting.Range{From: "2025-03-01", To: "2025-03-31"}); got != "languages_2025-03-01_2025-03-31.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}
