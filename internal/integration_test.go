package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bar-status-backend/config"
	"bar-status-backend/internal/model"
	"bar-status-backend/internal/reconciler"
	"bar-status-backend/internal/status"
	"bar-status-backend/internal/store"
)

// TestReconciliationLifecycle walks a bar through a full reconciliation
// cycle: a stale schedule window rolls over, a due auto transition fires
// into a manual override, and a second pass settles into a no-op.
func TestReconciliationLifecycle(t *testing.T) {
	// 1. Setup an in-memory SQLite database for testing.
	testDB, err := gorm.Open(sqlite.Open("file:reconcile_it?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(&model.Bar{}, &model.PushSubscription{}))

	// 2. Create a mock configuration.
	mockConfig := &config.Config{}
	mockConfig.Reconciler.Enabled = true
	mockConfig.Reconciler.Interval = time.Minute
	mockConfig.WorkerPool.Size = 4

	appStore := store.NewGormStore(testDB)
	svc := reconciler.NewService(mockConfig, appStore)

	now := time.Now()

	// 3. Seed a bar whose window is anchored three days back and whose
	// auto transition came due a minute ago.
	fireAt := now.Add(-time.Minute)
	target := status.Open
	week := status.NewWeeklySchedule(now.AddDate(0, 0, -3), status.DailySchedule{})
	bar := model.Bar{
		Name:                "Golden Gai",
		Schedule:            week,
		IsFollowingSchedule: true,
		LastStatus:          status.Closed,
		TransitionFireAt:    &fireAt,
		TransitionTarget:    &target,
		TransitionActive:    true,
	}
	require.NoError(t, appStore.CreateBar(context.Background(), &bar))

	// --- Pass 1: transition fires, window rolls over ---
	svc.TickOnce(context.Background())

	got, err := appStore.GetBar(context.Background(), bar.ID)
	require.NoError(t, err)

	assert.False(t, got.IsFollowingSchedule, "fired transition becomes a manual override")
	require.NotNil(t, got.ManualStatus)
	assert.Equal(t, status.Open, *got.ManualStatus)
	assert.Equal(t, status.Open, got.LastStatus)
	assert.False(t, got.TransitionActive)
	assert.Nil(t, got.AutoTransition())

	require.Len(t, got.Schedule.Days, status.WeekLength)
	assert.Equal(t, now.Format(status.DateLayout), got.Schedule.Days[0].Date, "window re-anchored at today")
	assert.WithinDuration(t, now, got.LastUpdated, 5*time.Second, "freshness marker refreshed")

	// --- Pass 2: nothing left to do ---
	before := got.LastUpdated
	svc.TickOnce(context.Background())

	again, err := appStore.GetBar(context.Background(), bar.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Unix(), again.LastUpdated.Unix(), "quiet pass writes nothing")
	assert.Equal(t, status.Open, again.LastStatus)
}

// TestReconciliationFaultIsolation seeds one healthy and one malformed bar
// and verifies the malformed one is contained rather than contagious.
func TestReconciliationFaultIsolation(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:reconcile_fault?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(&model.Bar{}, &model.PushSubscription{}))

	mockConfig := &config.Config{}
	mockConfig.WorkerPool.Size = 2

	appStore := store.NewGormStore(testDB)
	svc := reconciler.NewService(mockConfig, appStore)

	now := time.Now()

	healthy := model.Bar{
		Name:                "Fine",
		Schedule:            status.NewWeeklySchedule(now, status.DailySchedule{}),
		IsFollowingSchedule: true,
		LastStatus:          status.Open, // stale; schedule says closed
	}
	require.NoError(t, appStore.CreateBar(context.Background(), &healthy))

	broken := model.Bar{
		Name:                "Broken",
		Schedule:            status.WeeklySchedule{Days: []status.DailySchedule{{Date: now.Format(status.DateLayout), IsOpen: true, OpenTime: "??", CloseTime: "??"}}},
		IsFollowingSchedule: true,
		LastStatus:          status.Open,
	}
	require.NoError(t, appStore.CreateBar(context.Background(), &broken))

	svc.TickOnce(context.Background())

	gotHealthy, err := appStore.GetBar(context.Background(), healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, status.Closed, gotHealthy.LastStatus)
	assert.False(t, gotHealthy.Invalid)

	gotBroken, err := appStore.GetBar(context.Background(), broken.ID)
	require.NoError(t, err)
	assert.Equal(t, status.Closed, gotBroken.LastStatus, "malformed schedule resolves closed")
	assert.True(t, gotBroken.Invalid, "malformed schedule is flagged")
}
