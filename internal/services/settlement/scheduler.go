package settlement

import (
	"context"
	"log"
	"sync"
	"time"
)

// Scheduler fires the settlement sweep once per week at a fixed civil time.
// The schedule is process-wide state: Run re-arms it from scratch on every
// process start, so a restart never skips or doubles a week.
type Scheduler struct {
	processor *Processor
	weekday   time.Weekday
	hour      int
	location  *time.Location

	// sweeping guarantees at most one sweep at a time, whether triggered by
	// the timer or invoked manually.
	sweeping sync.Mutex

	now func() time.Time
}

// NewScheduler creates a weekly scheduler for the given civil day and hour
func NewScheduler(processor *Processor, weekday time.Weekday, hour int, tz string) (*Scheduler, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		processor: processor,
		weekday:   weekday,
		hour:      hour,
		location:  loc,
		now:       time.Now,
	}, nil
}

// NextFire returns the next scheduled sweep time strictly after the given
// instant, in the scheduler's timezone.
func (s *Scheduler) NextFire(after time.Time) time.Time {
	local := after.In(s.location)

	fire := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.location)
	days := (int(s.weekday) - int(local.Weekday()) + 7) % 7
	fire = fire.AddDate(0, 0, days)
	if !fire.After(after) {
		fire = fire.AddDate(0, 0, 7)
	}
	return fire
}

// Run arms the schedule and sweeps until the context is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.now()
		next := s.NextFire(now)
		log.Printf("next settlement sweep scheduled for %s", next.Format(time.RFC1123))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.Sweep(ctx, s.now()); err != nil {
				log.Printf("settlement sweep failed: %v", err)
			}
		}
	}
}

// Sweep runs one settlement pass at the given instant. Callers can invoke it
// directly for operational catch-up; overlapping invocations wait their turn.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) error {
	s.sweeping.Lock()
	defer s.sweeping.Unlock()
	return s.processor.RunSweep(ctx, now)
}
