package httpapi

import (
	"net/http"
	"strconv"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/internal/pricing"

	"github.com/gin-gonic/gin"
)

type planRequest struct {
	CentreID   centres.ID   `json:"centre_id"`
	LanguageID languages.ID `json:"language_id"`
	Threshold  int64        `json:"acd"`
	Rate       float64      `json:"rate"`
}

func (r planRequest) plan(id int64) pricing.Plan {
	return pricing.Plan{ID: id, CentreID: r.CentreID, LanguageID: r.LanguageID, Threshold: r.Threshold, Rate: r.Rate}
}

// planScope reads ?language_id= and ?centre_id=. Both are optional.
func planScope(c *gin.Context) (pricing.PlanFilter, bool) {
	var f pricing.PlanFilter
	lang, ok := queryID(c, "language_id")
	if !ok {
		return f, false
	}
	centre, ok := queryID(c, "centre_id")
	if !ok {
		return f, false
	}
	if lang != nil {
		l := languages.ID(*lang)
		f.LanguageID = &l
	}
	if centre != nil {
		cid := centres.ID(*centre)
		f.CentreID = &cid
	}
	return f, true
}

func (h Handlers) ListPayPlans(c *gin.Context) {
	f, ok := planScope(c)
	if !ok {
		return
	}
	out, err := h.Pricing.ListPlans(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// PayPlanLadder returns the effective ladder for ?language_id=&centre_id=,
// falling back to the language-wide ladder.
func (h Handlers) PayPlanLadder(c *gin.Context) {
	f, ok := planScope(c)
	if !ok {
		return
	}
	if f.LanguageID == nil {
		badRequest(c, "language_id required")
		return
	}
	centreID := centres.Global
	if f.CentreID != nil {
		centreID = *f.CentreID
	}
	out, err := h.Pricing.Ladder(c.Request.Context(), *f.LanguageID, centreID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ResolvePayRate answers ?language_id=&centre_id=&acd=[&call_seconds=] with
// the applicable rate and amount due. A miss yields null fields, not an error.
func (h Handlers) ResolvePayRate(c *gin.Context) {
	f, ok := planScope(c)
	if !ok {
		return
	}
	if f.LanguageID == nil {
		badRequest(c, "language_id required")
		return
	}
	centreID := centres.Global
	if f.CentreID != nil {
		centreID = *f.CentreID
	}
	acd, err := strconv.ParseFloat(c.Query("acd"), 64)
	if err != nil {
		badRequest(c, "acd must be a number of seconds")
		return
	}
	var callSeconds float64
	if raw := c.Query("call_seconds"); raw != "" {
		callSeconds, err = strconv.ParseFloat(raw, 64)
		if err != nil || callSeconds < 0 {
			badRequest(c, "call_seconds must be a non-negative number")
			return
		}
	}

	out, err := h.Pricing.Resolve(c.Request.Context(), *f.LanguageID, centreID, acd, callSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetPayPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Pricing.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreatePayPlan(c *gin.Context) {
	var req planRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Pricing.CreatePlan(c.Request.Context(), req.plan(0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdatePayPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req planRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Pricing.UpdatePlan(c.Request.Context(), req.plan(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeletePayPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Pricing.DeletePlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": out, "notice": "Pay plan deleted."})
}
