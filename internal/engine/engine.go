// Package engine derives each bar's effective status from its rolling
// schedule, reconciles it against owner overrides, and fires delayed
// transitions. It performs no I/O: every function takes a bar aggregate by
// value and returns the updated copy, so the caller decides what to persist.
package engine

import (
	"time"

	"bar-status-backend/internal/model"
	"bar-status-backend/internal/status"
)

// SetOverride puts the bar under a manual status. Any pending auto
// transition is cancelled; re-overriding an already overridden bar just
// replaces the manual value.
func SetOverride(bar model.Bar, s status.BarStatus) model.Bar {
	bar.IsFollowingSchedule = false
	bar.ManualStatus = &s
	return CancelAutoTransition(bar)
}

// StopFollowing freezes the bar at its current schedule-derived status.
// The resolved value becomes the manual status at the moment of the switch.
func StopFollowing(bar model.Bar, now time.Time) model.Bar {
	return SetOverride(bar, scheduleStatus(bar, now))
}

// ReturnToSchedule hands control back to the schedule, clearing the manual
// status and any pending auto transition.
func ReturnToSchedule(bar model.Bar) model.Bar {
	bar.IsFollowingSchedule = true
	bar.ManualStatus = nil
	return CancelAutoTransition(bar)
}

// StartAutoTransition arms a delayed status change. It does not touch the
// current status; the transition fires on a later tick once its instant has
// passed, at which point it becomes a manual override of the target.
func StartAutoTransition(bar model.Bar, target status.BarStatus, after time.Duration, now time.Time) model.Bar {
	fireAt := now.Add(after)
	bar.TransitionFireAt = &fireAt
	bar.TransitionTarget = &target
	bar.TransitionActive = true
	return bar
}

// CancelAutoTransition clears any pending transition. It is a no-op when
// none is armed.
func CancelAutoTransition(bar model.Bar) model.Bar {
	bar.TransitionFireAt = nil
	bar.TransitionTarget = nil
	bar.TransitionActive = false
	return bar
}

// EffectiveStatus is the status the bar reports right now: the manual value
// while overridden, the schedule-derived value while following. An
// overridden bar that never got an explicit manual value keeps the last
// recorded status.
func EffectiveStatus(bar model.Bar, now time.Time) status.BarStatus {
	if !bar.IsFollowingSchedule {
		if bar.ManualStatus != nil {
			return *bar.ManualStatus
		}
		if bar.LastStatus.Valid() {
			return bar.LastStatus
		}
		return status.Closed
	}
	return scheduleStatus(bar, now)
}

// InConflict reports whether an overridden bar's manual status disagrees
// with what the schedule would say. Advisory only; it never forces a state
// change.
func InConflict(bar model.Bar, now time.Time) bool {
	if bar.IsFollowingSchedule {
		return false
	}
	return EffectiveStatus(bar, now) != scheduleStatus(bar, now)
}

// Refresh rolls the schedule window over when its anchor date has passed.
// The returned flag tells the caller the aggregate changed and should be
// written back.
func Refresh(bar model.Bar, now time.Time) (model.Bar, bool) {
	if !bar.Schedule.NeedsRollover(now) {
		return bar, false
	}
	bar.Schedule = bar.Schedule.Rollover(now)
	return bar, true
}

func scheduleStatus(bar model.Bar, now time.Time) status.BarStatus {
	day, ok := bar.Schedule.Day(now)
	if !ok {
		return status.Closed
	}
	return status.Resolve(day, now)
}
