package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"bar-status-backend/internal/engine"
	"bar-status-backend/internal/model"
	"bar-status-backend/internal/status"
	"bar-status-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	loc      *time.Location
	defaults status.DailySchedule
}

// NewHandler creates a new API handler. The location fixes the wall clock
// used for status computation; nil means the system location. The defaults
// entry seeds the schedule window of newly created bars.
func NewHandler(s store.Store, webpushOptions *webpush.Options, loc *time.Location, defaults status.DailySchedule) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		loc:      loc,
		defaults: defaults,
	}
}

func (h *Handler) now() time.Time {
	return time.Now().In(h.loc)
}

// barResponse is the aggregate plus its derived, non-persisted fields.
type barResponse struct {
	model.Bar
	Status         status.BarStatus      `json:"status"`
	Conflict       bool                  `json:"conflict"`
	AutoTransition *model.AutoTransition `json:"autoTransition"`
}

// toBarResponse rolls a stale window in memory before deriving the status,
// so a bar unread for days still reports against today's schedule. The
// persisted copy catches up on the next reconciliation pass.
func toBarResponse(bar model.Bar, now time.Time) barResponse {
	bar, _ = engine.Refresh(bar, now)
	return barResponse{
		Bar:            bar,
		Status:         engine.EffectiveStatus(bar, now),
		Conflict:       engine.InConflict(bar, now),
		AutoTransition: bar.AutoTransition(),
	}
}
