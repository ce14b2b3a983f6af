package httpapi

import (
	"net/http"

	"centre-portal/internal/languages"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListLanguages(c *gin.Context) {
	out, err := h.Languages.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h Handlers) GetLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Languages.Get(c.Request.Context(), languages.ID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateLanguage(c *gin.Context) {
	var req languages.Language
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0
	out, err := h.Languages.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdateLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req languages.Language
	if !bindJSON(c, &req) {
		return
	}
	req.ID = languages.ID(id)
	out, err := h.Languages.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteLanguage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Languages.Delete(c.Request.Context(), languages.ID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": out, "notice": "Language " + out.Name + " deleted."})
}
