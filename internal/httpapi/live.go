package httpapi

import (
	"context"
	"net/http"
	"time"

	"centre-portal/internal/centres"
	"centre-portal/internal/traffic"
	"centre-portal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// LiveTraffic returns the current traffic snapshot. When the traffic service
// cannot be read the zeroed snapshot is still returned, with 502.
func (h Handlers) LiveTraffic(c *gin.Context) {
	snap := h.Traffic.Fetch(c.Request.Context())
	if !snap.OK() {
		c.JSON(http.StatusBadGateway, snap)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// LiveTrafficStream pushes a snapshot over a websocket every PushInterval
// until the client goes away.
func (h Handlers) LiveTrafficStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.FromGin(c).Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader: keeps pong handling alive and notices the client closing.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = h.Traffic.Stream(ctx, h.PushInterval, func(s traffic.Snapshot) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(s); err != nil {
			return err
		}
		return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
	})
	if err != nil && ctx.Err() == nil {
		logger.FromGin(c).Info("traffic stream ended", "err", err)
	}
}

// LiveSessions lists agent sessions in progress, optionally for ?centre_id=.
func (h Handlers) LiveSessions(c *gin.Context) {
	raw, ok := queryID(c, "centre_id")
	if !ok {
		return
	}
	var centreID *centres.ID
	if raw != nil {
		id := centres.ID(*raw)
		centreID = &id
	}
	rows, err := h.Reports.ActiveSessions(c.Request.Context(), centreID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
