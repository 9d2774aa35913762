package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bar-status-backend/internal/status"
)

type putScheduleRequest struct {
	Days []putScheduleDay `json:"days" binding:"required"`
}

type putScheduleDay struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// PutSchedule handles the PUT /api/bars/{bar_id}/schedule request,
// replacing the whole 7-day window. Entries are positional: index 0 is
// today. Dates are assigned server-side so the stored window always holds
// seven consecutive days anchored at today.
func (h *Handler) PutSchedule(c *gin.Context) {
	bar, ok := h.loadBar(c)
	if !ok {
		return
	}

	var req putScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Days) != status.WeekLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "schedule must contain exactly 7 days"})
		return
	}

	now := h.now()
	week := status.NewWeeklySchedule(now, status.DailySchedule{})
	for i, d := range req.Days {
		week.Days[i].IsOpen = d.IsOpen
		week.Days[i].OpenTime = d.OpenTime
		week.Days[i].CloseTime = d.CloseTime
	}
	if err := week.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bar.Schedule = week
	h.persistAndRespond(c, bar, now)
}
