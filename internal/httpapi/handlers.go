package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"centre-portal/internal/administrators"
	"centre-portal/internal/audit"
	"centre-portal/internal/auth"
	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/internal/operators"
	"centre-portal/internal/pricing"
	"centre-portal/internal/reporting"
	"centre-portal/internal/traffic"
	"centre-portal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TrafficFeed is satisfied by *traffic.Client.
type TrafficFeed interface {
	Fetch(ctx context.Context) traffic.Snapshot
	Stream(ctx context.Context, interval time.Duration, send func(traffic.Snapshot) error) error
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth           *auth.Service
	Signins        *audit.Service
	Centres        *centres.Service
	Languages      *languages.Service
	Operators      *operators.Service
	Administrators *administrators.Service
	Pricing        *pricing.Service
	Reports        *reporting.Service
	Traffic        TrafficFeed
	Exports        ExportLimiter

	// PushInterval paces the live traffic websocket.
	PushInterval time.Duration
}

// respondError maps service errors onto status codes. Not-found answers carry a
// notice the UI shows after navigating back to the listing.
func respondError(c *gin.Context, err error) {
	switch {
	case isNotFound(err):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error(), "notice": notice(err)})
	case isConflict(err):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isInvalid(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrThrottled):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again shortly"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, auth.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		logger.FromGin(c).Error("request failed", "err", err)
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, centres.ErrNotFound) ||
		errors.Is(err, languages.ErrNotFound) ||
		errors.Is(err, operators.ErrNotFound) ||
		errors.Is(err, administrators.ErrNotFound) ||
		errors.Is(err, pricing.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, operators.ErrDuplicate) ||
		errors.Is(err, operators.ErrIdentifierExhausted) ||
		errors.Is(err, administrators.ErrDuplicate) ||
		errors.Is(err, pricing.ErrDuplicateThreshold)
}

func isInvalid(err error) bool {
	return errors.Is(err, centres.ErrInvalidArgument) ||
		errors.Is(err, languages.ErrInvalidArgument) ||
		errors.Is(err, operators.ErrInvalidArgument) ||
		errors.Is(err, operators.ErrUnknownCentre) ||
		errors.Is(err, operators.ErrUnknownLanguage) ||
		errors.Is(err, administrators.ErrInvalidArgument) ||
		errors.Is(err, administrators.ErrUnknownCentre) ||
		errors.Is(err, pricing.ErrInvalidArgument) ||
		errors.Is(err, reporting.ErrInvalidRequest) ||
		errors.Is(err, audit.ErrInvalidSignin)
}

func notice(err error) string {
	switch {
	case errors.Is(err, centres.ErrNotFound):
		return "That centre no longer exists."
	case errors.Is(err, languages.ErrNotFound):
		return "That language no longer exists."
	case errors.Is(err, operators.ErrNotFound):
		return "That operator no longer exists."
	case errors.Is(err, administrators.ErrNotFound):
		return "That administrator no longer exists."
	case errors.Is(err, pricing.ErrNotFound):
		return "That pay plan no longer exists."
	}
	return "The requested record no longer exists."
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// pathID parses a positive integer path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryID parses an optional non-negative integer query parameter.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		badRequest(c, name+" must be a non-negative integer")
		return nil, false
	}
	return &id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid json")
		return false
	}
	return true
}
