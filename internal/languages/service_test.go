package languages

import (
	"context"
	"errors"
	"testing"
)

func TestService_ListOrderedByName(t *testing.T) {
	svc := NewService(NewMemoryRepo(Language{ID: 1, Name: "Tagalog"}, Language{ID: 2, Name: "English"}))
	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].Name != "English" {
		t.Fatalf("expected English first, got %+v", got)
	}
}

func TestService_CreateRequiresName(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Create(context.Background(), Language{Name: " "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	l, err := svc.Create(context.Background(), Language{Name: "Cebuano", Abbreviation: "CEB"})
	if err != nil || l.ID == 0 {
		t.Fatalf("unexpected create result %+v %v", l, err)
	}
}

func TestNameOf_Fallback(t *testing.T) {
	names, _ := NewService(NewMemoryRepo(Language{ID: 1, Name: "English"})).Names(context.Background())
	if NameOf(names, 1) != "English" || NameOf(names, 7) != UnknownName {
		t.Fatalf("unexpected lookups")
	}
}
