package monitor

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultScheduleTime is the daily check time used when the configuration
// does not set one.
const DefaultScheduleTime = "09:00"

// Watch runs CheckAll once immediately, then again every day at the given
// local time ("HH:MM"). It returns when ctx is cancelled.
func (m *Monitor) Watch(ctx context.Context, companies []Company, scheduleTime string, parallelism int) error {
	hour, minute, err := parseScheduleTime(scheduleTime)
	if err != nil {
		return err
	}

	log.Printf("[MONITOR] watching %d companies, daily at %02d:%02d", len(companies), hour, minute)
	m.runCycle(ctx, companies, parallelism)

	for {
		next := nextRun(time.Now(), hour, minute)
		log.Printf("[MONITOR] next check at %s", next.Format("2006-01-02 15:04"))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		m.runCycle(ctx, companies, parallelism)
	}
}

func (m *Monitor) runCycle(ctx context.Context, companies []Company, parallelism int) {
	reports := m.CheckAll(ctx, companies, parallelism)
	var total int
	for _, report := range reports {
		if report != nil {
			total += len(report.New)
		}
	}
	log.Printf("[MONITOR] cycle complete: %d new press releases", total)
}

// parseScheduleTime validates an "HH:MM" schedule string.
func parseScheduleTime(s string) (hour, minute int, err error) {
	if s == "" {
		s = DefaultScheduleTime
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid schedule time %q: %w", s, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// nextRun returns the next occurrence of hour:minute strictly after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
