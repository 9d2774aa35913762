package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bar-status-backend/internal/model"
	"bar-status-backend/internal/status"
)

// GetBars handles the GET /api/bars request.
func (h *Handler) GetBars(c *gin.Context) {
	bars, err := h.store.ListBars(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bars"})
		return
	}

	now := h.now()
	responses := make([]barResponse, 0, len(bars))
	for _, bar := range bars {
		responses = append(responses, toBarResponse(bar, now))
	}
	c.JSON(http.StatusOK, responses)
}

// GetBar handles the GET /api/bars/{bar_id} request.
func (h *Handler) GetBar(c *gin.Context) {
	bar, ok := h.loadBar(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toBarResponse(bar, h.now()))
}

type createBarRequest struct {
	Name      string `json:"name" binding:"required"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// CreateBar handles the POST /api/bars request. New bars start closed on
// every day of a window anchored at today; the optional times prefill the
// owner's editing surface.
func (h *Handler) CreateBar(c *gin.Context) {
	var req createBarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	day := h.defaults
	if req.OpenTime != "" {
		if _, err := status.ParseClock(req.OpenTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		day.OpenTime = req.OpenTime
	}
	if req.CloseTime != "" {
		if _, err := status.ParseClock(req.CloseTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		day.CloseTime = req.CloseTime
	}

	now := h.now()
	bar := model.Bar{
		Name:                req.Name,
		Schedule:            status.NewWeeklySchedule(now, day),
		IsFollowingSchedule: true,
		LastStatus:          status.Closed,
		LastUpdated:         now,
	}
	if err := h.store.CreateBar(c.Request.Context(), &bar); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bar"})
		return
	}
	c.JSON(http.StatusCreated, toBarResponse(bar, now))
}

// loadBar parses the bar_id path parameter and loads the aggregate,
// answering the request itself on failure.
func (h *Handler) loadBar(c *gin.Context) (model.Bar, bool) {
	id, err := strconv.ParseInt(c.Param("bar_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid bar ID"})
		return model.Bar{}, false
	}

	bar, err := h.store.GetBar(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "bar not found"})
		return model.Bar{}, false
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bar"})
		return model.Bar{}, false
	}
	return bar, true
}
