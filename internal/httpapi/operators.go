package httpapi

import (
	"net/http"
	"strconv"

	"centre-portal/internal/centres"
	"centre-portal/internal/languages"
	"centre-portal/internal/operators"

	"github.com/gin-gonic/gin"
)

// operatorRequest is the writable subset of an operator. The identifier and
// call counters are owned by the server.
type operatorRequest struct {
	CentreID   centres.ID       `json:"centre_id"`
	LanguageID languages.ID     `json:"language_id"`
	Status     operators.Status `json:"status"`
	FirstName  string           `json:"first_name"`
	Surname    string           `json:"surname"`
	Mobile     string           `json:"mobile"`
	Email      string           `json:"email"`
}

func (r operatorRequest) operator(id int64) operators.Operator {
	return operators.Operator{
		ID:         id,
		CentreID:   r.CentreID,
		LanguageID: r.LanguageID,
		Status:     r.Status,
		FirstName:  r.FirstName,
		Surname:    r.Surname,
		Mobile:     r.Mobile,
		Email:      r.Email,
	}
}

// ListOperators supports ?search=, ?centre_id= and ?page= (1-based).
func (h Handlers) ListOperators(c *gin.Context) {
	f := operators.ListFilter{Search: c.Query("search"), Page: 1}
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			badRequest(c, "page must be a positive integer")
			return
		}
		f.Page = p
	}
	centreID, ok := queryID(c, "centre_id")
	if !ok {
		return
	}
	if centreID != nil {
		id := centres.ID(*centreID)
		f.CentreID = &id
	}

	page, err := h.Operators.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetOperator(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Operators.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateOperator(c *gin.Context) {
	var req operatorRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Operators.Create(c.Request.Context(), req.operator(0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdateOperator(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req operatorRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Operators.Update(c.Request.Context(), req.operator(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteOperator(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Operators.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": out, "notice": "Operator " + out.FullName + " deleted."})
}
