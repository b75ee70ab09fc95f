package settlement

import (
	"testing"
	"time"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(nil, time.Wednesday, 12, "America/New_York")
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}
	return s
}

func TestNextFire(t *testing.T) {
	s := newTestScheduler(t)
	ny, _ := time.LoadLocation("America/New_York")

	tests := []struct {
		name  string
		after time.Time
		want  time.Time
	}{
		{
			name:  "monday fires the coming wednesday",
			after: time.Date(2025, 6, 2, 9, 0, 0, 0, ny), // Monday
			want:  time.Date(2025, 6, 4, 12, 0, 0, 0, ny),
		},
		{
			name:  "wednesday morning fires at noon the same day",
			after: time.Date(2025, 6, 4, 8, 0, 0, 0, ny),
			want:  time.Date(2025, 6, 4, 12, 0, 0, 0, ny),
		},
		{
			name:  "wednesday at noon exactly waits a full week",
			after: time.Date(2025, 6, 4, 12, 0, 0, 0, ny),
			want:  time.Date(2025, 6, 11, 12, 0, 0, 0, ny),
		},
		{
			name:  "wednesday afternoon waits a full week",
			after: time.Date(2025, 6, 4, 15, 30, 0, 0, ny),
			want:  time.Date(2025, 6, 11, 12, 0, 0, 0, ny),
		},
		{
			name:  "schedule follows the civil timezone regardless of input zone",
			after: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), // Monday 05:00 NY
			want:  time.Date(2025, 6, 4, 12, 0, 0, 0, ny),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.NextFire(tt.after)
			if !got.Equal(tt.want) {
				t.Errorf("NextFire(%v) = %v, want %v", tt.after, got, tt.want)
			}
			if got.Weekday() != time.Wednesday {
				t.Errorf("NextFire landed on %s, want Wednesday", got.Weekday())
			}
		})
	}
}

func TestNextFireAlwaysAdvances(t *testing.T) {
	s := newTestScheduler(t)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		next := s.NextFire(now)
		if !next.After(now) {
			t.Fatalf("NextFire(%v) = %v did not advance", now, next)
		}
		if gap := next.Sub(now); gap > 7*24*time.Hour+time.Hour {
			t.Fatalf("gap from %v to %v exceeds a week", now, next)
		}
		now = next
	}
}
