package reporting

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/internal/pricing"
)

var day = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func closed(d time.Duration) *time.Duration { return &d }

func fixtures() *MemoryRepo {
	repo := NewMemoryRepo()
	repo.Centres[5] = "Manila"
	repo.Centres[6] = "Cebu"
	repo.Languages[1] = "English"
	repo.Languages[2] = "Tagalog"
	repo.Languages[3] = "Spanish"
	repo.Devices[10] = "desk-10"
	repo.Operators = []MemoryOperator{
		{ID: 1, CentreID: 5, LanguageID: 1, Identifier: "1001", FirstName: "Ana", Surname: "Cruz"},
		{ID: 2, CentreID: 5, LanguageID: 2, Identifier: "1002", FirstName: "Ben", Surname: "Reyes"},
		{ID: 3, CentreID: 5, LanguageID: 3, Identifier: "1003", FirstName: "Carla", Surname: "Diaz"},
		{ID: 4, CentreID: 77, LanguageID: 1, Identifier: "1004", FirstName: "Dan"},
		{ID: 5, CentreID: 6, LanguageID: 1, Identifier: "1005", FirstName: "Eve"},
	}
	repo.Sessions = []MemorySession{
		{ID: 1, OperatorID: 1, DeviceID: 10, Start: day.Add(9 * time.Hour), Duration: closed(4 * time.Hour), Calls: 2, CallSeconds: 900},
		{ID: 2, OperatorID: 1, DeviceID: 99, Start: day.Add(14 * time.Hour), Duration: closed(time.Hour), Calls: 1, CallSeconds: 0},
		{ID: 3, OperatorID: 2, Start: day.Add(8 * time.Hour), Duration: closed(2 * time.Hour), Calls: 4, CallSeconds: 400},
		{ID: 4, OperatorID: 2, Start: day.Add(20 * time.Hour), Calls: 1, CallSeconds: 60},
		{ID: 5, OperatorID: 3, Start: day.Add(10 * time.Hour), Duration: closed(time.Hour), Calls: 2, CallSeconds: 120},
		{ID: 6, OperatorID: 4, Start: day.Add(10 * time.Hour), Duration: closed(time.Hour), Calls: 9, CallSeconds: 900},
		{ID: 7, OperatorID: 5, Start: day.Add(11 * time.Hour), Duration: closed(time.Hour), Calls: 0, CallSeconds: 0},
		{ID: 8, OperatorID: 1, Start: day.Add(24 * time.Hour), Duration: closed(time.Hour), Calls: 50, CallSeconds: 5000},
		{ID: 9, OperatorID: 1, Start: day.Add(-time.Second), Duration: closed(time.Hour), Calls: 50, CallSeconds: 5000},
	}
	return repo
}

func newTestService(repo *MemoryRepo) *Service {
	plans := pricing.NewService(pricing.NewMemoryRepo(
		pricing.Plan{LanguageID: 1, CentreID: 5, Threshold: 0, Rate: 1.0},
		pricing.Plan{LanguageID: 1, CentreID: 5, Threshold: 300, Rate: 1.5},
		pricing.Plan{LanguageID: 1, CentreID: 5, Threshold: 600, Rate: 2.0},
		pricing.Plan{LanguageID: 3, CentreID: centres.Global, Threshold: 0, Rate: 0.8},
	))
	c := centres.NewService(centres.NewMemoryRepo(centres.Centre{ID: 5, Name: "Manila"}, centres.Centre{ID: 6, Name: "Cebu"}))
	l := languages.NewService(languages.NewMemoryRepo(
		languages.Language{ID: 1, Name: "English"},
		languages.Language{ID: 2, Name: "Tagalog"},
		languages.Language{ID: 3, Name: "Spanish"},
	))
	return NewService(repo, plans, c, l, Options{Location: time.UTC, MaxDays: 31})
}

func oneDay(t *testing.T, svc *Service) Range {
	t.Helper()
	r, err := svc.Range("2025-03-01", "2025-03-01")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return r
}

func TestCentreSummary_InnerJoinsAndRange(t *testing.T) {
	svc := newTestService(fixtures())
	out, err := svc.CentreSummary(context.Background(), oneDay(t, svc))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("expected 2 centres (dangling centre excluded), got %+v", out.Rows)
	}
	cebu, manila := out.Rows[0], out.Rows[1]
	if cebu.CentreName != "Cebu" || cebu.ACD != 0 || cebu.Sessions != 1 {
		t.Fatalf("unexpected cebu row %+v", cebu)
	}
	if manila.Languages != 3 || manila.Agents != 3 || manila.Sessions != 5 || manila.Calls != 10 || manila.CallSeconds != 1480 {
		t.Fatalf("unexpected manila row %+v", manila)
	}
	if manila.ACD != 148 {
		t.Fatalf("expected ACD 148, got %v", manila.ACD)
	}
	if out.Totals.Sessions != 6 || out.Totals.Calls != 10 {
		t.Fatalf("unexpected totals %+v", out.Totals)
	}
}

func TestLanguageSummary_BillingAndTotalDue(t *testing.T) {
	svc := newTestService(fixtures())
	out, err := svc.LanguageSummary(context.Background(), oneDay(t, svc), 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CentreName != "Manila" || len(out.Rows) != 3 {
		t.Fatalf("unexpected report %+v", out)
	}
	byName := map[string]LanguageSummaryRow{}
	for _, r := range out.Rows {
		byName[r.LanguageName] = r
	}

	en := byName["English"]
	if en.ACD != 300 || en.Rate == nil || *en.Rate != 1.5 || *en.Due != 22.5 {
		t.Fatalf("unexpected english row %+v", en)
	}
	tl := byName["Tagalog"]
	if tl.Calls != 5 || tl.Rate != nil || tl.Due != nil {
		t.Fatalf("expected unbilled tagalog row including the active session, got %+v", tl)
	}
	es := byName["Spanish"]
	if es.Rate == nil || *es.Rate != 0.8 {
		t.Fatalf("expected global rate for spanish, got %+v", es)
	}

	want := *en.Due + *es.Due
	if math.Abs(out.Totals.TotalDue-want) > 1e-9 {
		t.Fatalf("expected total due %v, got %v", want, out.Totals.TotalDue)
	}
	if out.Totals.Agents != 3 || out.Totals.Sessions != 5 {
		t.Fatalf("unexpected totals %+v", out.Totals)
	}
}

func TestLanguageSummary_UnknownCentreName(t *testing.T) {
	svc := newTestService(fixtures())
	out, err := svc.LanguageSummary(context.Background(), oneDay(t, svc), 404)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CentreName != centres.UnknownName || len(out.Rows) != 0 || out.Rows == nil {
		t.Fatalf("unexpected report %+v", out)
	}
}

func TestAgentSummary_ClosedSessionsOnly(t *testing.T) {
	svc := newTestService(fixtures())
	out, err := svc.AgentSummary(context.Background(), oneDay(t, svc), 5, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("expected one agent, got %+v", out.Rows)
	}
	row := out.Rows[0]
	if row.Sessions != 1 || row.Calls != 4 || row.ACD != 100 || row.FullName != "Ben Reyes" {
		t.Fatalf("active session should be excluded: %+v", row)
	}
	if out.LanguageName != "Tagalog" || out.CentreName != "Manila" {
		t.Fatalf("unexpected names %+v", out)
	}
}

func TestAgentSessions_DeviceFallbackAndZeroCalls(t *testing.T) {
	svc := newTestService(fixtures())
	out, err := svc.AgentSessions(context.Background(), oneDay(t, svc), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("expected two sessions inside the day, got %+v", out.Rows)
	}
	if out.Rows[0].DeviceName != "desk-10" || out.Rows[0].ACD != 450 || out.Rows[0].DurationSeconds != 4*3600 {
		t.Fatalf("unexpected first session %+v", out.Rows[0])
	}
	if out.Rows[1].DeviceName != UnknownDevice || out.Rows[1].ACD != 0 {
		t.Fatalf("unexpected second session %+v", out.Rows[1])
	}
	if out.Totals.Calls != 3 || out.Totals.ACD != 300 {
		t.Fatalf("unexpected totals %+v", out.Totals)
	}

	if _, err := svc.AgentSessions(context.Background(), oneDay(t, svc), 0); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestActiveSessions(t *testing.T) {
	repo := fixtures()
	repo.Sessions = append(repo.Sessions, MemorySession{ID: 20, OperatorID: 4, Start: day.Add(21 * time.Hour), Calls: 2})
	svc := newTestService(repo)
	svc.clock = func() time.Time { return day.Add(22 * time.Hour) }

	rows, err := svc.ActiveSessions(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 active sessions, got %+v", rows)
	}
	if rows[0].SessionID != 4 || rows[0].ElapsedSeconds != 7200 || rows[0].DeviceName != UnknownDevice {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].CentreName != centres.UnknownName || rows[1].LanguageName != "English" {
		t.Fatalf("expected centre fallback, got %+v", rows[1])
	}

	five := centres.ID(5)
	rows, _ = svc.ActiveSessions(context.Background(), &five)
	if len(rows) != 1 || rows[0].OperatorID != 2 {
		t.Fatalf("unexpected filtered rows %+v", rows)
	}
}

func TestAverageCallDuration(t *testing.T) {
	if averageCallDuration(0, 500) != 0 {
		t.Fatalf("expected 0 with no calls")
	}
	if averageCallDuration(4, 100) != 25 {
		t.Fatalf("expected 25")
	}
}
