package httpapi

import (
	"net/http"

	"centre-portal/internal/centres"

	"github.com/gin-gonic/gin"
)

// ListCentres supports ?search= and ?status=active|disabled.
func (h Handlers) ListCentres(c *gin.Context) {
	f := centres.ListFilter{Search: c.Query("search"), Status: centres.StatusFilter(c.Query("status"))}
	switch f.Status {
	case centres.StatusAny, centres.StatusActive, centres.StatusDisabled:
	default:
		badRequest(c, "status must be active or disabled")
		return
	}
	out, err := h.Centres.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h Handlers) GetCentre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Centres.Get(c.Request.Context(), centres.ID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateCentre(c *gin.Context) {
	var req centres.Centre
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0
	out, err := h.Centres.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdateCentre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req centres.Centre
	if !bindJSON(c, &req) {
		return
	}
	req.ID = centres.ID(id)
	out, err := h.Centres.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteCentre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Centres.Delete(c.Request.Context(), centres.ID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": out, "notice": "Centre " + out.Name + " deleted."})
}
