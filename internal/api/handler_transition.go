package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bar-status-backend/internal/engine"
	"bar-status-backend/internal/status"
)

type postTransitionRequest struct {
	TargetStatus string `json:"targetStatus" binding:"required"`
	AfterMinutes int    `json:"afterMinutes"`
}

// PostTransition handles the POST /api/bars/{bar_id}/transition request,
// arming a "change status in N minutes" timer. The current status is
// untouched until the reconciler fires the transition.
func (h *Handler) PostTransition(c *gin.Context) {
	bar, ok := h.loadBar(c)
	if !ok {
		return
	}

	var req postTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.AfterMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "afterMinutes must not be negative"})
		return
	}
	target, err := status.Parse(req.TargetStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := h.now()
	bar = engine.StartAutoTransition(bar, target, time.Duration(req.AfterMinutes)*time.Minute, now)
	h.persistAndRespond(c, bar, now)
}

// DeleteTransition handles the DELETE /api/bars/{bar_id}/transition
// request. Cancelling with nothing pending is a harmless no-op.
func (h *Handler) DeleteTransition(c *gin.Context) {
	bar, ok := h.loadBar(c)
	if !ok {
		return
	}

	bar = engine.CancelAutoTransition(bar)
	h.persistAndRespond(c, bar, h.now())
}
