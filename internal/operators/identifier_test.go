package operators

import (
	"errors"
	"strconv"
	"testing"
)

func TestIdentifierGenerator_FourDigits(t *testing.T) {
	g := NewIdentifierGenerator(nil)
	for i := 0; i < 200; i++ {
		id, err := g.Next(nil)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		n, err := strconv.Atoi(id)
		if err != nil || n < 1000 || n > 9999 {
			t.Fatalf("identifier %q out of range", id)
		}
	}
}

func TestIdentifierGenerator_SkipsTaken(t *testing.T) {
	draws := []int{0, 0, 1}
	g := NewIdentifierGenerator(func(int) int {
		v := draws[0]
		draws = draws[1:]
		return v
	})
	id, err := g.Next(map[string]struct{}{"1000": {}})
	if err != nil || id != "1001" {
		t.Fatalf("expected 1001, got %q %v", id, err)
	}
}

func TestIdentifierGenerator_ExhaustedAfterBoundedAttempts(t *testing.T) {
	taken := make(map[string]struct{}, 9000)
	for n := 1000; n <= 9999; n++ {
		taken[strconv.Itoa(n)] = struct{}{}
	}
	calls := 0
	g := NewIdentifierGenerator(func(n int) int {
		calls++
		return calls % n
	})
	if _, err := g.Next(taken); !errors.Is(err, ErrIdentifierExhausted) {
		t.Fatalf("expected ErrIdentifierExhausted, got %v", err)
	}
	if calls != maxIdentifierAttempts {
		t.Fatalf("expected %d draws, got %d", maxIdentifierAttempts, calls)
	}
}
