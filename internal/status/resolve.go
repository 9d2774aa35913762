package status

import "time"

// TransitionWindow is how long before an open or close instant the status
// reads OpeningSoon or ClosingSoon.
const TransitionWindow = 15 * time.Minute

// DailySchedule describes whether a bar opens on one calendar date and when.
// CloseTime numerically earlier than OpenTime means the bar closes after
// midnight; that is valid overnight hours, not an error.
type DailySchedule struct {
	Date      string `json:"date"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Resolve computes the schedule-implied status of day at the given instant.
// It is a pure function; malformed time strings resolve to Closed rather
// than surfacing an error into the caller.
func Resolve(day DailySchedule, now time.Time) BarStatus {
	if !day.IsOpen {
		return Closed
	}

	openClock, err := ParseClock(day.OpenTime)
	if err != nil {
		return Closed
	}
	closeClock, err := ParseClock(day.CloseTime)
	if err != nil {
		return Closed
	}

	midnight := Midnight(now)
	openAt := midnight.Add(openClock.Duration())
	closeAt := midnight.Add(closeClock.Duration())

	if closeClock < openClock {
		// Overnight hours. The close belongs to the next calendar day,
		// and an early-morning `now` may still sit inside the window
		// that began the previous evening.
		closeAt = closeAt.Add(24 * time.Hour)
		if now.Before(openAt.Add(-TransitionWindow)) {
			openAt = openAt.Add(-24 * time.Hour)
			closeAt = closeAt.Add(-24 * time.Hour)
		}
	}

	switch {
	case now.Before(openAt.Add(-TransitionWindow)):
		return Closed
	case now.Before(openAt):
		return OpeningSoon
	case now.Before(closeAt.Add(-TransitionWindow)):
		return Open
	case now.Before(closeAt):
		return ClosingSoon
	default:
		return Closed
	}
}
