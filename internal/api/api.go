// Package api exposes the dashboard over HTTP as JSON.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/ivr-reports/internal/dashboard"
	"github.com/celerix-dev/ivr-reports/internal/export"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
	"github.com/celerix-dev/ivr-reports/pkg/sdk"
)

type Handler struct {
	App *dashboard.App
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.App.Login(c.Request.Context(), input.Username, input.Password)
	if errors.Is(err, sdk.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": dashboard.Message(err)})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": dashboard.Message(err)})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.App.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.User())
}

// RequireSession rejects requests while nobody is logged in.
func (h *Handler) RequireSession(c *gin.Context) {
	if !h.App.LoggedIn() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": dashboard.Message(dashboard.ErrNotLoggedIn)})
		return
	}
	c.Next()
}

// Records returns the current table view. The optional q parameter replaces
// the search query, page moves the table.
func (h *Handler) Records(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok && q != h.App.Query() {
		h.App.SetQuery(q)
	}
	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		h.App.GoTo(page)
	}
	c.JSON(http.StatusOK, h.App.View())
}

func (h *Handler) SetFilters(c *gin.Context) {
	var f schema.FilterCriteria
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.reload(c, h.App.SetFilters(c.Request.Context(), f))
}

func (h *Handler) ClearFilters(c *gin.Context) {
	h.reload(c, h.App.ClearFilters(c.Request.Context()))
}

func (h *Handler) Reload(c *gin.Context) {
	h.reload(c, h.App.Load(c.Request.Context()))
}

func (h *Handler) reload(c *gin.Context, err error) {
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": dashboard.Message(err)})
		return
	}
	c.JSON(http.StatusOK, h.App.View())
}

func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Stats())
}

// Export streams the loaded records as a CSV attachment.
func (h *Handler) Export(c *gin.Context) {
	_, err := h.App.Export(export.SinkFunc(func(filename string, content []byte) error {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
		return nil
	}))
	if errors.Is(err, export.ErrNothingToExport) {
		c.JSON(http.StatusNotFound, gin.H{"error": dashboard.Message(err)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
