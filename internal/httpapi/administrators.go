package httpapi

import (
	"net/http"

	"centre-portal/internal/administrators"
	"centre-portal/internal/centres"

	"github.com/gin-gonic/gin"
)

type administratorRequest struct {
	CentreID      centres.ID `json:"centre_id"`
	Name          string     `json:"name"`
	Username      string     `json:"username"`
	Password      string     `json:"password"`
	Email         string     `json:"email"`
	Mobile        string     `json:"mobile"`
	Restricted    bool       `json:"restricted"`
	Notifications bool       `json:"notifications"`
}

func (r administratorRequest) administrator(id int64) administrators.Administrator {
	return administrators.Administrator{
		ID:            id,
		CentreID:      r.CentreID,
		Name:          r.Name,
		Username:      r.Username,
		Password:      r.Password,
		Email:         r.Email,
		Mobile:        r.Mobile,
		Restricted:    r.Restricted,
		Notifications: r.Notifications,
	}
}

func (h Handlers) ListAdministrators(c *gin.Context) {
	out, err := h.Administrators.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h Handlers) GetAdministrator(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Administrators.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateAdministrator(c *gin.Context) {
	var req administratorRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Administrators.Create(c.Request.Context(), req.administrator(0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateAdministrator keeps the stored password when the request leaves it blank.
func (h Handlers) UpdateAdministrator(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req administratorRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Administrators.Update(c.Request.Context(), req.administrator(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteAdministrator(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Administrators.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": out, "notice": "Administrator " + out.Username + " deleted."})
}
