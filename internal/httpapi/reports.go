package httpapi

import (
	"bytes"
	"net/http"

	"centre-portal/internal/auth"
	"centre-portal/internal/centres"
	"centre-portal/internal/export"
	"centre-portal/internal/languages"
	"centre-portal/internal/reporting"
	"centre-portal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// reportRange reads ?from= and ?to= (YYYY-MM-DD, inclusive).
func (h Handlers) reportRange(c *gin.Context) (reporting.Range, bool) {
	r, err := h.Reports.Range(c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return reporting.Range{}, false
	}
	return r, true
}

func (h Handlers) CentreReport(c *gin.Context) {
	r, ok := h.reportRange(c)
	if !ok {
		return
	}
	out, err := h.Reports.CentreSummary(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) LanguageReport(c *gin.Context) {
	r, ok := h.reportRange(c)
	if !ok {
		return
	}
	centreID, ok := pathID(c, "centre_id")
	if !ok {
		return
	}
	out, err := h.Reports.LanguageSummary(c.Request.Context(), r, centres.ID(centreID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) AgentReport(c *gin.Context) {
	r, ok := h.reportRange(c)
	if !ok {
		return
	}
	centreID, ok := pathID(c, "centre_id")
	if !ok {
		return
	}
	languageID, ok := pathID(c, "language_id")
	if !ok {
		return
	}
	out, err := h.Reports.AgentSummary(c.Request.Context(), r, centres.ID(centreID), languages.ID(languageID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) SessionReport(c *gin.Context) {
	r, ok := h.reportRange(c)
	if !ok {
		return
	}
	operatorID, ok := pathID(c, "operator_id")
	if !ok {
		return
	}
	out, err := h.Reports.AgentSessions(c.Request.Context(), r, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) ExportCentreReport(c *gin.Context) {
	r, ok := h.reportRange(c)
	if !ok {
		return
	}
	h.withExportSlot(c, func() {
		rep, err := h.Reports.CentreSummary(c.Request.Context(), r)
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := export.CentreReport(&buf, rep); err != nil {
			respondError(c, err)
			return
		}
		sendWorkbook(c, export.Filename("centres", r), &buf)
	})
}

func (h Handlers) ExportLanguageReport(c *gin.Context) {
	r, ok := h.reportRange(c)
	if !ok {
		return
	}
	centreID, ok := pathID(c, "centre_id")
	if !ok {
		return
	}
	h.withExportSlot(c, func() {
		rep, err := h.Reports.LanguageSummary(c.Request.Context(), r, centres.ID(centreID))
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := export.LanguageReport(&buf, rep); err != nil {
			respondError(c, err)
			return
		}
		sendWorkbook(c, export.Filename("languages", r), &buf)
	})
}

// withExportSlot runs fn while holding one of the caller's export slots.
// Without a limiter configured exports are uncapped.
func (h Handlers) withExportSlot(c *gin.Context, fn func()) {
	if h.Exports == nil {
		fn()
		return
	}
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	release, ok, err := h.Exports.Acquire(c.Request.Context(), id.UserID)
	if err != nil {
		// Fail open.
		logger.FromGin(c).Warn("export limiter unavailable", "err", err)
		fn()
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "an export is already running, try again when it finishes"})
		return
	}
	defer release()
	fn()
}

func sendWorkbook(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
