package centres

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func seeded() *MemoryRepo {
	return NewMemoryRepo(
		Centre{ID: 1, Name: "Manila North"},
		Centre{ID: 2, Name: "Cebu", Disabled: true},
		Centre{ID: 3, Name: "manila south"},
	)
}

func TestService_ListSearchAndStatus(t *testing.T) {
	svc := NewService(seeded())
	ctx := context.Background()

	got, err := svc.List(ctx, ListFilter{Search: "MANILA"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 manila centres, got %d", len(got))
	}

	got, _ = svc.List(ctx, ListFilter{Status: StatusDisabled})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only Cebu, got %+v", got)
	}

	got, _ = svc.List(ctx, ListFilter{Status: StatusActive})
	if len(got) != 2 {
		t.Fatalf("expected 2 active centres, got %d", len(got))
	}

	if _, err := svc.List(ctx, ListFilter{Status: "archived"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestService_CreateValidates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, Centre{Name: "   "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for blank name, got %v", err)
	}
	if _, err := svc.Create(ctx, Centre{Name: strings.Repeat("x", 33)}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for long name, got %v", err)
	}

	c, err := svc.Create(ctx, Centre{Name: "  Davao ", Dedicated: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.ID == 0 || c.Name != "Davao" {
		t.Fatalf("unexpected centre %+v", c)
	}
}

func TestService_UpdateAndDeleteMissing(t *testing.T) {
	svc := NewService(seeded())
	ctx := context.Background()

	if _, err := svc.Update(ctx, Centre{ID: 99, Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	deleted, err := svc.Delete(ctx, 1)
	if err != nil || deleted.Name != "Manila North" {
		t.Fatalf("unexpected delete result %+v %v", deleted, err)
	}
	if _, err := svc.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted centre to be gone")
	}
}

func TestNameOf_FallsBackForDanglingReference(t *testing.T) {
	names, err := NewService(seeded()).Names(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := NameOf(names, 2); got != "Cebu" {
		t.Fatalf("expected Cebu, got %q", got)
	}
	if got := NameOf(names, 42); got != UnknownName {
		t.Fatalf("expected %q, got %q", UnknownName, got)
	}
}
