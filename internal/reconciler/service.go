// Package reconciler drives the periodic re-evaluation of every bar's
// effective status. It owns the clock and the persistence round-trip; the
// actual status rules live in the engine package.
package reconciler

import (
	"context"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"bar-status-backend/config"
	"bar-status-backend/internal/engine"
	"bar-status-backend/internal/metrics"
	"bar-status-backend/internal/model"
	"bar-status-backend/internal/notification"
	"bar-status-backend/internal/store"
)

// Service runs the reconciliation loop on a cadence.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
	loc        *time.Location
}

// NewService creates and initializes a new reconciler service.
func NewService(cfg *config.Config, s store.Store) *Service {
	loc := time.Local
	if cfg.Reconciler.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Reconciler.Timezone)
		if err != nil {
			log.Printf("Warning: invalid timezone %q: %v. Falling back to the system location.", cfg.Reconciler.Timezone, err)
		} else {
			loc = parsed
		}
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      s,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, s.DB(), &webpushOptions),
		loc:        loc,
	}
}

// Run starts the reconciliation loop. A skipped interval is harmless: the
// next pass catches up because the engine compares fire times against the
// current instant rather than counting ticks.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reconciler.Enabled {
		log.Println("Reconciler is disabled. Not starting.")
		return
	}
	log.Println("Starting reconciler service...")

	s.workerPool.Start(ctx)

	s.TickOnce(ctx)

	timer := time.NewTimer(s.cfg.Reconciler.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reconciler service shutting down.")
			return
		case <-timer.C:
			s.TickOnce(ctx)
			timer.Reset(s.cfg.Reconciler.Interval)
		}
	}
}

// TickOnce performs a single reconciliation pass: load every bar, let the
// engine roll windows and fire due transitions, persist what changed, and
// notify subscribers about status changes.
func (s *Service) TickOnce(ctx context.Context) {
	now := time.Now().In(s.loc)
	metrics.IncTick()

	bars, err := s.store.ListBars(ctx)
	if err != nil {
		log.Printf("Error loading bars for reconciliation: %v", err)
		return
	}

	changes := engine.Tick(bars, now)

	changedByID := make(map[int64]engine.Change, len(changes))
	for _, c := range changes {
		changedByID[c.Bar.ID] = c
	}

	invalid := 0
	for _, bar := range bars {
		if c, ok := changedByID[bar.ID]; ok {
			bar = c.Bar
		}
		if bar.Invalid {
			invalid++
		}
	}
	metrics.SetInvalidSchedules(invalid)

	if len(changes) == 0 {
		return
	}

	toSave := make([]model.Bar, 0, len(changes))
	for _, c := range changes {
		bar := c.Bar
		bar.LastUpdated = now
		toSave = append(toSave, bar)

		if c.TransitionFired {
			metrics.IncTransitionFired()
		}
	}

	if err := s.store.SaveBars(ctx, toSave); err != nil {
		log.Printf("Error persisting reconciled bars: %v", err)
		return
	}

	for _, c := range changes {
		if !c.StatusChanged {
			continue
		}
		metrics.IncStatusChange(string(c.Bar.LastStatus))
		s.workerPool.Dispatch(notification.Job{BarID: c.Bar.ID, Status: c.Bar.LastStatus})
	}

	log.Printf("Reconciliation pass finished: %d bars changed", len(changes))
}
