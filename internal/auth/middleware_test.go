package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newAuthedRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAccessToken(m), func(c *gin.Context) {
		id, err := FromContext(c.Request.Context())
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, id)
	})
	return r
}

func TestRequireAccessToken(t *testing.T) {
	m := testManager(t)
	r := newAuthedRouter(m)
	pair, _ := m.IssuePair(time.Now(), Identity{UserID: 9, Username: "ana", Role: RoleStaff})

	tests := []struct {
		name   string
		setup  func(*http.Request)
		url    string
		status int
	}{
		{"missing", func(*http.Request) {}, "/me", http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, "/me", http.StatusUnauthorized},
		{"refresh token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+pair.RefreshToken) }, "/me", http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+pair.AccessToken) }, "/me", http.StatusOK},
		{"query without upgrade", func(*http.Request) {}, "/me?token=" + pair.AccessToken, http.StatusUnauthorized},
		{"query on websocket upgrade", func(r *http.Request) { r.Header.Set("Upgrade", "websocket") }, "/me?token=" + pair.AccessToken, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}
