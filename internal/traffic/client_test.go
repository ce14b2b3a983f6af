package traffic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const sampleBody = `[[["5","12","1","30","90","180",""]],[["Manila","5","12","2","30","90","180","5"]]]`

func newTestClient(url string, cache Cache) *Client {
	return NewClient(Options{
		BaseURL:       url,
		Timeout:       2 * time.Second,
		CacheTTL:      time.Minute,
		Cache:         cache,
		RetryInterval: 10 * time.Millisecond,
	})
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/globaldata" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	s := newTestClient(srv.URL, nil).Fetch(context.Background())
	if !s.OK() || s.Summary.AgentsOnline != 12 || len(s.Centres) != 1 || s.FetchedAt.IsZero() {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestFetch_MalformedBodyFallsBack(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("definitely not json"))
	}))
	defer srv.Close()

	s := newTestClient(srv.URL, nil).Fetch(context.Background())
	if s.OK() || s.Summary != (Summary{}) || s.Centres == nil || len(s.Centres) != 0 {
		t.Fatalf("expected zeroed fallback, got %+v", s)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("malformed bodies should not be retried, got %d hits", hits)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"error":"traffic service unavailable`) || !strings.Contains(string(b), `"centres":[]`) {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	s := newTestClient(srv.URL, nil).Fetch(context.Background())
	if !s.OK() || atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected success on third attempt, got %+v after %d hits", s, hits)
	}
}

func TestFetch_NotFoundIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := newTestClient(srv.URL, nil).Fetch(context.Background())
	if s.OK() || !strings.Contains(s.Error, "404") || atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("unexpected result %+v after %d hits", s, hits)
	}
}

func TestFetch_TimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 100 * time.Millisecond, RetryInterval: 10 * time.Millisecond})
	start := time.Now()
	s := c.Fetch(context.Background())
	if s.OK() {
		t.Fatalf("expected fallback on timeout")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("fetch exceeded its timeout budget")
	}
}

func TestFetch_UnreachableFallsBack(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1", Timeout: 300 * time.Millisecond, RetryInterval: 10 * time.Millisecond})
	if s := c.Fetch(context.Background()); s.OK() || s.Centres == nil {
		t.Fatalf("expected fallback, got %+v", s)
	}
}

func TestFetch_CachesSuccessOnly(t *testing.T) {
	var hits int32
	fail := int32(1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if atomic.LoadInt32(&fail) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, NewMemoryCache())
	ctx := context.Background()
	if s := c.Fetch(ctx); s.OK() {
		t.Fatalf("expected failure first")
	}
	atomic.StoreInt32(&fail, 0)
	if s := c.Fetch(ctx); !s.OK() {
		t.Fatalf("failure must not be cached: %+v", s)
	}
	if s := c.Fetch(ctx); !s.OK() || s.Summary.Calls != 30 {
		t.Fatalf("unexpected cached snapshot %+v", s)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected 2 upstream hits, got %d", got)
	}
}

func TestStream_StopsOnSendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	sent := 0
	errStop := context.Canceled
	err := c.Stream(context.Background(), 5*time.Millisecond, func(s Snapshot) error {
		sent++
		if sent == 3 {
			return errStop
		}
		return nil
	})
	if err != errStop || sent != 3 {
		t.Fatalf("expected stop after 3 sends, got %d %v", sent, err)
	}
}
