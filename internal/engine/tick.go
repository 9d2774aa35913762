package engine

import (
	"time"

	"bar-status-backend/internal/model"
)

// Change is one bar touched by a reconciliation pass, with the reasons the
// caller may care about: a status change should notify subscribers, a fired
// transition is worth a metric, and any change at all needs persisting.
type Change struct {
	Bar             model.Bar
	StatusChanged   bool
	TransitionFired bool
}

// Tick runs one reconciliation pass over every bar: lazy schedule rollover,
// firing of due auto transitions, and effective-status recomputation. It
// returns the bars that changed. A malformed schedule never aborts the
// pass; the affected bar resolves to closed and is flagged invalid.
//
// Tick is idempotent with respect to now: a pass skipped while the process
// was down is caught up by the next call, because transition firing is a
// plain fireAt <= now comparison.
func Tick(bars []model.Bar, now time.Time) []Change {
	var changed []Change
	for _, bar := range bars {
		if c, ok := TickOne(bar, now); ok {
			changed = append(changed, c)
		}
	}
	return changed
}

// TickOne reconciles a single bar. The second return value reports whether
// anything changed.
func TickOne(bar model.Bar, now time.Time) (Change, bool) {
	var c Change
	var cleared bool

	bar, rolled := Refresh(bar, now)

	if bar.TransitionActive && bar.TransitionFireAt != nil && !bar.TransitionFireAt.After(now) {
		if bar.TransitionTarget != nil {
			bar = SetOverride(bar, *bar.TransitionTarget)
			c.TransitionFired = true
		} else {
			// Corrupt record with no target; drop it instead of firing.
			bar = CancelAutoTransition(bar)
			cleared = true
		}
	}

	invalid := bar.Schedule.Validate() != nil
	flagged := invalid != bar.Invalid
	bar.Invalid = invalid

	eff := EffectiveStatus(bar, now)
	if eff != bar.LastStatus {
		bar.LastStatus = eff
		c.StatusChanged = true
	}

	if !rolled && !c.TransitionFired && !c.StatusChanged && !flagged && !cleared {
		return Change{}, false
	}
	c.Bar = bar
	return c, true
}
