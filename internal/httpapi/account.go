package httpapi

import (
	"net/http"
	"strconv"

	"centre-portal/internal/auth"

	"github.com/gin-gonic/gin"
)

func (h Handlers) Login(c *gin.Context) {
	var req auth.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	req.IPAddress = c.ClientIP()
	if req.Language == "" {
		req.Language = c.GetHeader("Accept-Language")
	}
	if req.Application == "" {
		req.Application = c.GetHeader("User-Agent")
	}

	res, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h Handlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		badRequest(c, "refresh_token required")
		return
	}
	res, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) Me(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	c.JSON(http.StatusOK, id)
}

// MySignins lists the caller's recent sign-ins (?limit=, at most 100).
func (h Handlers) MySignins(c *gin.Context) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.Signins.Recent(c.Request.Context(), id.UserID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
