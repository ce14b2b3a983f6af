package pricing

import (
	"math/rand/v2"
	"testing"
)

func ladder(pairs ...float64) []Plan {
	var out []Plan
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Plan{Threshold: int64(pairs[i]), Rate: pairs[i+1]})
	}
	return out
}

func TestResolveRate_Buckets(t *testing.T) {
	l := ladder(0, 1.0, 300, 1.5, 600, 2.0)
	cases := []struct {
		acd  float64
		want float64
		ok   bool
	}{
		{acd: 0, ok: false},
		{acd: -5, ok: false},
		{acd: 1, want: 1.0, ok: true},
		{acd: 299.9, want: 1.0, ok: true},
		{acd: 300, want: 1.5, ok: true},
		{acd: 450, want: 1.5, ok: true},
		{acd: 599, want: 1.5, ok: true},
		{acd: 600, want: 2.0, ok: true},
		{acd: 700, want: 2.0, ok: true},
		{acd: 1e6, want: 2.0, ok: true},
	}
	for _, tc := range cases {
		got, ok := ResolveRate(l, tc.acd)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("acd=%v: got (%v, %v), want (%v, %v)", tc.acd, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveRate_BelowSmallestThresholdHasNoRate(t *testing.T) {
	l := ladder(120, 1.1, 300, 1.4)
	if _, ok := ResolveRate(l, 60); ok {
		t.Fatalf("expected no rate below the smallest threshold")
	}
	if got, ok := ResolveRate(l, 120); !ok || got != 1.1 {
		t.Fatalf("expected 1.1 at the smallest threshold, got %v %v", got, ok)
	}
}

func TestResolveRate_EmptyLadder(t *testing.T) {
	if _, ok := ResolveRate(nil, 100); ok {
		t.Fatalf("expected no rate for an empty ladder")
	}
}

func TestResolveRate_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for n := 0; n < 200; n++ {
		size := 1 + r.IntN(6)
		l := make([]Plan, size)
		t0 := int64(r.IntN(100))
		for i := range l {
			l[i] = Plan{Threshold: t0, Rate: float64(i + 1)}
			t0 += 1 + int64(r.IntN(300))
		}
		last := l[size-1]

		acd := float64(last.Threshold) + r.Float64()*1000
		if acd > 0 {
			if got, ok := ResolveRate(l, acd); !ok || got != last.Rate {
				t.Fatalf("acd %v above top threshold: got %v %v", acd, got, ok)
			}
		}
		for i := 0; i < size-1; i++ {
			lo, hi := float64(l[i].Threshold), float64(l[i+1].Threshold)
			acd := lo + r.Float64()*(hi-lo)
			if acd <= 0 {
				continue
			}
			if got, ok := ResolveRate(l, acd); !ok || got != l[i].Rate {
				t.Fatalf("acd %v in [%v,%v): got %v %v, want %v", acd, lo, hi, got, ok, l[i].Rate)
			}
		}
	}
}

func TestAmountDue(t *testing.T) {
	if got := AmountDue(90, 2.0); got != 3.0 {
		t.Fatalf("expected 3.0, got %v", got)
	}
}
