package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"centre-portal/internal/reporting"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename names a report workbook after its kind and date range.
func Filename(kind string, r reporting.Range) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", kind, r.From, r.To)
}

// CentreReport writes the centre summary as a one-sheet workbook.
func CentreReport(w io.Writer, rep reporting.CentreReport) error {
	rows := make([][]any, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		rows = append(rows, []any{
			r.CentreName, r.Languages, r.Agents, r.Sessions, r.Calls, minutes(r.CallSeconds), round(r.ACD),
		})
	}
	t := rep.Totals
	rows = append(rows, []any{"Total", "", "", t.Sessions, t.Calls, minutes(t.CallSeconds), round(t.ACD)})

	return write(w, "Centres", rep.Range,
		[]any{"Centre", "Languages", "Agents", "Sessions", "Calls", "Minutes", "ACD (s)"}, rows)
}

// LanguageReport writes one centre's per-language summary with billing.
func LanguageReport(w io.Writer, rep reporting.LanguageReport) error {
	rows := make([][]any, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		rows = append(rows, []any{
			r.LanguageName, r.Agents, r.Sessions, r.Calls, minutes(r.CallSeconds), round(r.ACD), optional(r.Rate), optional(r.Due),
		})
	}
	t := rep.Totals
	rows = append(rows, []any{"Total", t.Agents, t.Sessions, t.Calls, minutes(t.CallSeconds), round(t.ACD), "", round(t.TotalDue)})

	return write(w, sheetName(rep.CentreName), rep.Range,
		[]any{"Language", "Agents", "Sessions", "Calls", "Minutes", "ACD (s)", "Rate", "Due"}, rows)
}

func write(w io.Writer, sheet string, rg reporting.Range, header []any, rows [][]any) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%s to %s", rg.From, rg.To)); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 3)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", last, bold); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
		end, _ := excelize.CoordinatesToCellName(len(header), len(rows)+3)
		if err := f.SetCellStyle(sheet, first, end, bold); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func minutes(seconds float64) float64 { return round(seconds / 60) }

func round(v float64) float64 { return math.Round(v*100) / 100 }

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return round(*v)
}

// sheetName trims to the 31 characters Excel allows and drops forbidden characters.
func sheetName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	if len(out) == 0 {
		return "Report"
	}
	return string(out)
}
