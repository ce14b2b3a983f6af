package utils

import (
	"context"
	"testing"
	"time"
)

func TestConcurrencyScriptsCompile(t *testing.T) {
	if concurrencyAcquireScript == nil || concurrencyReleaseScript == nil {
		t.Fatalf("expected scripts to be initialized")
	}
}

func TestRedisHelpersRejectNilClient(t *testing.T) {
	ctx := context.Background()
	if _, err := AcquireConcurrencyCap(ctx, nil, "k", 1, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
	if err := ReleaseConcurrencyCap(ctx, nil, "k"); err == nil {
		t.Fatalf("expected error for nil client")
	}
	var v map[string]int
	if _, err := GetJSON(ctx, nil, "k", &v); err == nil {
		t.Fatalf("expected error for nil client")
	}
	if err := SetJSON(ctx, nil, "k", v, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestOpenRedisRequiresAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
