package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	DefaultPollInterval     = 15 * time.Second
	DefaultRolloverInterval = time.Minute
)

// Refresher keeps a ViewCache in sync with the ledger: a steady poll picks up
// changes made elsewhere, and a faster day check resets per-day state the
// moment the JST day ticks over.
type Refresher struct {
	cache    *ViewCache
	ledger   Ledger
	poll     time.Duration
	rollover time.Duration
}

func NewRefresher(cache *ViewCache, ledger Ledger) *Refresher {
	return &Refresher{
		cache:    cache,
		ledger:   ledger,
		poll:     DefaultPollInterval,
		rollover: DefaultRolloverInterval,
	}
}

// WithIntervals overrides the poll and rollover periods.
func (rf *Refresher) WithIntervals(poll, rollover time.Duration) *Refresher {
	if poll > 0 {
		rf.poll = poll
	}
	if rollover > 0 {
		rf.rollover = rollover
	}
	return rf
}

// Refresh reloads habits and today's completions from the ledger.
func (rf *Refresher) Refresh(ctx context.Context) error {
	habits, err := rf.ledger.ActiveHabits(ctx)
	if err != nil {
		return errors.New("refreshing habits error: " + err.Error())
	}
	done, err := rf.ledger.CompletedHabitIDs(ctx, rf.cache.Today())
	if err != nil {
		return errors.New("refreshing completions error: " + err.Error())
	}
	rf.cache.SetHabits(habits)
	rf.cache.SetDone(done)
	return nil
}

// Run polls until ctx is canceled. A failed refresh keeps the previous view
// and is retried on the next tick.
func (rf *Refresher) Run(ctx context.Context) {
	pollTicker := time.NewTicker(rf.poll)
	defer pollTicker.Stop()
	rolloverTicker := time.NewTicker(rf.rollover)
	defer rolloverTicker.Stop()

	if err := rf.Refresh(ctx); err != nil {
		slog.Error("initial refresh failed", slog.String("error", err.Error()))
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			if err := rf.Refresh(ctx); err != nil {
				slog.Error("refresh failed", slog.String("error", err.Error()))
			}
		case <-rolloverTicker.C:
			if rf.cache.Rollover() {
				slog.Info("day rolled over", slog.String("today", rf.cache.Today()))
				if err := rf.Refresh(ctx); err != nil {
					slog.Error("refresh after rollover failed", slog.String("error", err.Error()))
				}
			}
		}
	}
}
