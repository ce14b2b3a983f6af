package audit

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRecordSignin_TruncatesAndStamps(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	now := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return now }

	err := svc.RecordSignin(context.Background(), Signin{
		UserID:      7,
		IPAddress:   "203.0.113.9",
		Language:    "en-GB,en;q=0.9,fil;q=0.8,es;q=0.7,de;q=0.6",
		Application: strings.Repeat("Mozilla/5.0 ", 40),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := repo.Signins()
	if len(got) != 1 {
		t.Fatalf("expected 1 signin, got %d", len(got))
	}
	s := got[0]
	if !s.At.Equal(now) || len(s.Language) != maxLanguage || len(s.Application) > maxApplication {
		t.Fatalf("unexpected signin %+v", s)
	}
}

func TestRecordSignin_RequiresUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.RecordSignin(context.Background(), Signin{}); err != ErrInvalidSignin {
		t.Fatalf("expected ErrInvalidSignin, got %v", err)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	base := time.Unix(1700000000, 0).UTC()
	for i := 0; i < 3; i++ {
		_ = svc.RecordSignin(ctx, Signin{UserID: 1, At: base.Add(time.Duration(i) * time.Hour)})
	}
	_ = svc.RecordSignin(ctx, Signin{UserID: 2, At: base})

	got, err := svc.Recent(ctx, 1, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || !got[0].At.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("unexpected recent %+v", got)
	}
}
