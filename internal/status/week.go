package status

import (
	"fmt"
	"time"
)

// WeekLength is the number of days in a schedule window.
const WeekLength = 7

// WeeklySchedule is a rolling window of seven consecutive days, index 0
// anchored at "today" when the window was built or last rolled over.
type WeeklySchedule struct {
	Days []DailySchedule `json:"days"`
}

// NewWeeklySchedule builds a window anchored at today. The default entry
// supplies IsOpen/OpenTime/CloseTime for every day; its Date is ignored.
func NewWeeklySchedule(today time.Time, def DailySchedule) WeeklySchedule {
	days := make([]DailySchedule, WeekLength)
	for i := range days {
		days[i] = DailySchedule{
			Date:      today.AddDate(0, 0, i).Format(DateLayout),
			IsOpen:    def.IsOpen,
			OpenTime:  def.OpenTime,
			CloseTime: def.CloseTime,
		}
	}
	return WeeklySchedule{Days: days}
}

// NeedsRollover reports whether the window's anchor date has drifted away
// from today. An empty or headless window always needs a rollover.
func (w WeeklySchedule) NeedsRollover(today time.Time) bool {
	if len(w.Days) == 0 {
		return true
	}
	return w.Days[0].Date != today.Format(DateLayout)
}

// Rollover re-anchors the window at today, carrying each old day's settings
// forward onto the new day with the same day of week. Old entries that fail
// to parse are skipped; new days without a weekday match keep the freshly
// built closed defaults.
func (w WeeklySchedule) Rollover(today time.Time) WeeklySchedule {
	fresh := NewWeeklySchedule(today, DailySchedule{})

	byWeekday := make(map[time.Weekday]DailySchedule, len(w.Days))
	for _, d := range w.Days {
		t, err := ParseDate(d.Date, today.Location())
		if err != nil {
			continue
		}
		if _, ok := byWeekday[t.Weekday()]; !ok {
			byWeekday[t.Weekday()] = d
		}
	}

	for i := range fresh.Days {
		date := today.AddDate(0, 0, i)
		old, ok := byWeekday[date.Weekday()]
		if !ok {
			continue
		}
		fresh.Days[i].IsOpen = old.IsOpen
		fresh.Days[i].OpenTime = old.OpenTime
		fresh.Days[i].CloseTime = old.CloseTime
	}
	return fresh
}

// Day returns the entry covering the given instant's calendar date.
func (w WeeklySchedule) Day(at time.Time) (DailySchedule, bool) {
	key := at.Format(DateLayout)
	for _, d := range w.Days {
		if d.Date == key {
			return d, true
		}
	}
	return DailySchedule{}, false
}

// Validate checks the window invariants: exactly seven entries, consecutive
// calendar dates, and parseable open/close times on every open day.
func (w WeeklySchedule) Validate() error {
	if len(w.Days) != WeekLength {
		return fmt.Errorf("schedule has %d days, want %d", len(w.Days), WeekLength)
	}
	var prev time.Time
	for i, d := range w.Days {
		t, err := ParseDate(d.Date, time.UTC)
		if err != nil {
			return fmt.Errorf("day %d: bad date %q", i, d.Date)
		}
		if i > 0 && !t.Equal(prev.AddDate(0, 0, 1)) {
			return fmt.Errorf("day %d: date %s does not follow %s", i, d.Date, w.Days[i-1].Date)
		}
		prev = t
		if !d.IsOpen {
			continue
		}
		if _, err := ParseClock(d.OpenTime); err != nil {
			return fmt.Errorf("day %d: %w", i, err)
		}
		if _, err := ParseClock(d.CloseTime); err != nil {
			return fmt.Errorf("day %d: %w", i, err)
		}
	}
	return nil
}
