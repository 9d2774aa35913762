package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNewWeeklySchedule(t *testing.T) {
	today := date(2025, 6, 10)
	w := NewWeeklySchedule(today, DailySchedule{OpenTime: "18:00", CloseTime: "02:00"})

	require.Len(t, w.Days, WeekLength)
	assert.Equal(t, "2025-06-10", w.Days[0].Date)
	assert.Equal(t, "2025-06-16", w.Days[6].Date)
	for _, d := range w.Days {
		assert.False(t, d.IsOpen)
		assert.Equal(t, "18:00", d.OpenTime)
		assert.Equal(t, "02:00", d.CloseTime)
	}
	assert.NoError(t, w.Validate())
}

func TestNeedsRollover(t *testing.T) {
	today := date(2025, 6, 10)
	w := NewWeeklySchedule(today, DailySchedule{})

	assert.False(t, w.NeedsRollover(today))
	assert.True(t, w.NeedsRollover(today.AddDate(0, 0, 1)))
	assert.True(t, WeeklySchedule{}.NeedsRollover(today))
}

func TestRollover_PreservesWeekdaySettings(t *testing.T) {
	// 2025-06-10 is a Tuesday, so Friday sits at index 3.
	today := date(2025, 6, 10)
	w := NewWeeklySchedule(today, DailySchedule{})
	w.Days[3].IsOpen = true
	w.Days[3].OpenTime = "18:00"
	w.Days[3].CloseTime = "02:00"

	rolled := w.Rollover(today.AddDate(0, 0, 3))

	require.Len(t, rolled.Days, WeekLength)
	assert.Equal(t, "2025-06-13", rolled.Days[0].Date)
	for i, d := range rolled.Days {
		parsed, err := ParseDate(d.Date, time.Local)
		require.NoError(t, err)
		if parsed.Weekday() == time.Friday {
			assert.True(t, d.IsOpen, "day %d should stay open on Friday", i)
			assert.Equal(t, "18:00", d.OpenTime)
			assert.Equal(t, "02:00", d.CloseTime)
		} else {
			assert.False(t, d.IsOpen, "day %d should stay closed", i)
		}
	}
}

func TestRollover_Idempotent(t *testing.T) {
	today := date(2025, 6, 10)
	w := NewWeeklySchedule(today.AddDate(0, 0, -5), DailySchedule{})
	w.Days[2].IsOpen = true
	w.Days[2].OpenTime = "12:00"
	w.Days[2].CloseTime = "22:00"

	once := w.Rollover(today)
	assert.False(t, once.NeedsRollover(today))

	twice := once.Rollover(today)
	assert.Equal(t, once, twice)
}

func TestRollover_TruncatedWindowKeepsDefaults(t *testing.T) {
	today := date(2025, 6, 10)

	// Only three old entries survive; days with no weekday match keep the
	// freshly built closed defaults.
	w := WeeklySchedule{Days: []DailySchedule{
		{Date: "2025-06-06", IsOpen: true, OpenTime: "18:00", CloseTime: "23:00"}, // Friday
		{Date: "2025-06-07", IsOpen: true, OpenTime: "18:00", CloseTime: "23:00"}, // Saturday
		{Date: "2025-06-08"}, // Sunday
	}}

	rolled := w.Rollover(today)
	require.Len(t, rolled.Days, WeekLength)
	assert.NoError(t, rolled.Validate())

	openDays := 0
	for _, d := range rolled.Days {
		parsed, err := ParseDate(d.Date, time.Local)
		require.NoError(t, err)
		switch parsed.Weekday() {
		case time.Friday, time.Saturday:
			assert.True(t, d.IsOpen)
			openDays++
		default:
			assert.False(t, d.IsOpen)
			assert.Empty(t, d.OpenTime)
		}
	}
	assert.Equal(t, 2, openDays)
}

func TestRollover_SkipsUnparseableEntries(t *testing.T) {
	today := date(2025, 6, 10)
	w := WeeklySchedule{Days: []DailySchedule{
		{Date: "not-a-date", IsOpen: true, OpenTime: "10:00", CloseTime: "20:00"},
	}}

	rolled := w.Rollover(today)
	assert.NoError(t, rolled.Validate())
	for _, d := range rolled.Days {
		assert.False(t, d.IsOpen)
	}
}

func TestValidate(t *testing.T) {
	today := date(2025, 6, 10)

	valid := NewWeeklySchedule(today, DailySchedule{})
	assert.NoError(t, valid.Validate())

	short := WeeklySchedule{Days: valid.Days[:5]}
	assert.Error(t, short.Validate())

	gap := NewWeeklySchedule(today, DailySchedule{})
	gap.Days[4].Date = "2025-07-01"
	assert.Error(t, gap.Validate())

	badTime := NewWeeklySchedule(today, DailySchedule{})
	badTime.Days[1].IsOpen = true
	badTime.Days[1].OpenTime = "noon"
	badTime.Days[1].CloseTime = "22:00"
	assert.Error(t, badTime.Validate())
}
