package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"centre-portal/internal/traffic"

	"github.com/gorilla/websocket"
)

func TestLiveTrafficFailureAnswers502WithZeroedBody(t *testing.T) {
	e := newTestEnv(t)
	e.feed.snap = traffic.Fallback(errors.New("timeout"), time.Now())

	w := e.do(http.MethodGet, "/v1/live/traffic", e.staff, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var got traffic.Snapshot
	decode(t, w, &got)
	if got.Error == "" || got.Centres == nil || len(got.Centres) != 0 || got.Summary != (traffic.Summary{}) {
		t.Fatalf("expected zeroed snapshot with error, got %+v", got)
	}
}

func TestLiveTrafficSuccess(t *testing.T) {
	e := newTestEnv(t)
	e.feed.snap = traffic.Snapshot{
		Summary: traffic.Summary{Traffic: 12, AgentsOnline: 4},
		Centres: []traffic.CentreRow{{Name: "Manila", ID: 5, Calls: 3}},
	}

	w := e.do(http.MethodGet, "/v1/live/traffic", e.staff, nil)
	var got traffic.Snapshot
	decode(t, w, &got)
	if w.Code != http.StatusOK || got.Summary.AgentsOnline != 4 || len(got.Centres) != 1 {
		t.Fatalf("unexpected %d %+v", w.Code, got)
	}
}

func TestLiveTrafficWebsocket(t *testing.T) {
	e := newTestEnv(t)
	e.feed.snap = traffic.Snapshot{Summary: traffic.Summary{Calls: 7}, Centres: []traffic.CentreRow{}}

	srv := httptest.NewServer(e.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/live/traffic/ws?token=" + e.staff
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v (%v)", err, resp)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got traffic.Snapshot
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Summary.Calls != 7 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestLiveSessions(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(http.MethodGet, "/v1/live/sessions?centre_id=5", e.staff, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Fatalf("unexpected %d %s", w.Code, w.Body.String())
	}
	if w := e.do(http.MethodGet, "/v1/live/sessions?centre_id=x", e.staff, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
