package traffic

import "testing"

func TestParse_MixedCells(t *testing.T) {
	body := `[
		[["12.5", "40", "3", "120", "360", "180", ""]],
		[["Manila", "5", "20", "3", "80", "240", "180", "8.5"],
		 ["Cebu", 6, 10, null, "n/a", 120, 90.5, ""]],
		["Davao", "7", "", "", "", "", "", ""]
	]`
	s, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := Summary{Traffic: 12.5, AgentsOnline: 40, Waiting: 3, Calls: 120, Minutes: 360, ACD: 180}
	if s.Summary != want {
		t.Fatalf("unexpected summary %+v", s.Summary)
	}
	if len(s.Centres) != 3 {
		t.Fatalf("expected 3 centres, got %+v", s.Centres)
	}
	cebu := s.Centres[1]
	if cebu.Name != "Cebu" || cebu.ID != 6 || cebu.Languages != 0 || cebu.Calls != 0 || cebu.ACD != 90.5 {
		t.Fatalf("unexpected cebu row %+v", cebu)
	}
	if s.Centres[2].Name != "Davao" || s.Centres[2].ID != 7 || s.Centres[2].Traffic != 0 {
		t.Fatalf("unexpected flat row %+v", s.Centres[2])
	}
}

func TestParse_FlatSummaryAndShortRows(t *testing.T) {
	s, err := Parse([]byte(`[["1", "2"], [["Only name"]]]`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Summary.Traffic != 1 || s.Summary.AgentsOnline != 2 || s.Summary.ACD != 0 {
		t.Fatalf("unexpected summary %+v", s.Summary)
	}
	if len(s.Centres) != 1 || s.Centres[0].Name != "Only name" || s.Centres[0].Calls != 0 {
		t.Fatalf("unexpected centres %+v", s.Centres)
	}
}

func TestParse_NonNumericIsZero(t *testing.T) {
	s, err := Parse([]byte(`[["abc", "NaN", "Inf", "  7 ", null, true, {}]]`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Summary != (Summary{Calls: 7}) {
		t.Fatalf("unexpected summary %+v", s.Summary)
	}
	if s.Centres == nil {
		t.Fatalf("centres should be an empty list, not nil")
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, body := range []string{`<html>oops</html>`, `[]`, `{"a":1}`, ``, `[[1], "x"]`} {
		if _, err := Parse([]byte(body)); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}
