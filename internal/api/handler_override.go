package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bar-status-backend/internal/engine"
	"bar-status-backend/internal/model"
	"bar-status-backend/internal/status"
)

type putOverrideRequest struct {
	Status string `json:"status"`
}

// PutOverride handles the PUT /api/bars/{bar_id}/override request. With a
// status token the bar is pinned to that value; with an empty body it stops
// following the schedule and freezes at the current derived status.
func (h *Handler) PutOverride(c *gin.Context) {
	bar, ok := h.loadBar(c)
	if !ok {
		return
	}

	var req putOverrideRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	now := h.now()
	if req.Status == "" {
		bar, _ = engine.Refresh(bar, now)
		bar = engine.StopFollowing(bar, now)
	} else {
		manual, err := status.Parse(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bar = engine.SetOverride(bar, manual)
	}

	h.persistAndRespond(c, bar, now)
}

// DeleteOverride handles the DELETE /api/bars/{bar_id}/override request,
// returning the bar to its schedule.
func (h *Handler) DeleteOverride(c *gin.Context) {
	bar, ok := h.loadBar(c)
	if !ok {
		return
	}

	bar = engine.ReturnToSchedule(bar)
	h.persistAndRespond(c, bar, h.now())
}

// persistAndRespond recomputes the recorded status after a state change,
// stamps the freshness marker, writes the aggregate back and answers with
// the updated view.
func (h *Handler) persistAndRespond(c *gin.Context, bar model.Bar, now time.Time) {
	bar, _ = engine.Refresh(bar, now)
	bar.LastStatus = engine.EffectiveStatus(bar, now)
	bar.Invalid = bar.Schedule.Validate() != nil
	bar.LastUpdated = now

	if err := h.store.SaveBar(c.Request.Context(), bar); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bar"})
		return
	}
	c.JSON(http.StatusOK, toBarResponse(bar, now))
}
