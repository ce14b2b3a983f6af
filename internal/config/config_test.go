package config

import (
	"strings"
	"testing"
	"time"
)

func validLocal() Config {
	return Config{
		App:     AppConfig{Env: "local", Port: 8080},
		DB:      DBConfig{Host: "localhost", Port: 5432, User: "portal", Password: "x", Name: "callcentre"},
		Redis:   RedisConfig{Host: "localhost", Port: 6379},
		Auth:    AuthConfig{JWTSecret: "secret"},
		Traffic: TrafficConfig{Host: "http://traffic.local:8081"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	err := c.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"APP_ENV", "DB_HOST", "REDIS_HOST", "JWT_SECRET", "TRAFFIC_HOST"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %q", want, err.Error())
		}
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "portal"
	c.Auth.JWTAudience = "staff"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := validLocal()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
	if c.Traffic.Timeout != 10*time.Second {
		t.Fatalf("expected 10s traffic timeout, got %v", c.Traffic.Timeout)
	}
	if c.Reports.Location == nil || c.Reports.Location.String() != "UTC" {
		t.Fatalf("expected UTC reporting location, got %v", c.Reports.Location)
	}
	if c.Reports.MaxDays != 366 || c.Login.AttemptsPerMinute != 10 {
		t.Fatalf("unexpected defaults: %+v %+v", c.Reports, c.Login)
	}
}

func TestValidate_RejectsUnknownTimezone(t *testing.T) {
	c := validLocal()
	c.Reports.Timezone = "Mars/Olympus"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestValidate_RejectsNonHTTPTrafficHost(t *testing.T) {
	c := validLocal()
	c.Traffic.Host = "traffic.local:8081"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for traffic host without scheme")
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "portal")
	t.Setenv("DB_NAME", "callcentre")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TRAFFIC_HOST", "http://traffic:8081/")
	t.Setenv("TRAFFIC_TIMEOUT", "4s")
	t.Setenv("REPORT_TIMEZONE", "Europe/London")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr() != ":9000" || c.RedisAddr() != "cache:6379" {
		t.Fatalf("unexpected addrs %q %q", c.HTTPAddr(), c.RedisAddr())
	}
	if c.Traffic.Host != "http://traffic:8081" || c.Traffic.Timeout != 4*time.Second {
		t.Fatalf("unexpected traffic config %+v", c.Traffic)
	}
	if c.Reports.Location.String() != "Europe/London" {
		t.Fatalf("unexpected location %v", c.Reports.Location)
	}
}

func TestLoad_RejectsNonIntegerPort(t *testing.T) {
	t.Setenv("APP_PORT", "eighty")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_RejectsMalformedOptionalInts(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "portal")
	t.Setenv("DB_NAME", "callcentre")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TRAFFIC_HOST", "http://traffic:8081")

	for _, key := range []string{"REPORT_MAX_DAYS", "REPORT_EXPORT_CONCURRENCY", "LOGIN_ATTEMPTS_PER_MINUTE"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "lots")
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Fatalf("expected error naming %s, got %v", key, err)
			}
		})
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("unset optional ints must default, got %v", err)
	}
	if c.Reports.MaxDays != 366 || c.Reports.ExportConcurrency != 2 || c.Login.AttemptsPerMinute != 10 {
		t.Fatalf("unexpected defaults %+v %+v", c.Reports, c.Login)
	}
}
