package progression

import (
	"testing"
	"time"

	"github.com/adiontis/investment-bridge/internal/models"
)

func TestInCooldown(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	future := now.Add(6 * time.Hour)
	past := now.Add(-1 * time.Hour)

	tests := []struct {
		name  string
		until *time.Time
		want  bool
	}{
		{"no cooldown set", nil, false},
		{"cooldown in the future", &future, true},
		{"cooldown already expired", &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{CooldownUntil: tt.until}
			if got := InCooldown(user, now); got != tt.want {
				t.Errorf("InCooldown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCooldownHoursRemaining(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)

	until := now.Add(11*time.Hour + 30*time.Minute)
	user := &models.User{CooldownUntil: &until}
	if got := CooldownHoursRemaining(user, now); got != 12 {
		t.Errorf("partial hours round up: got %d, want 12", got)
	}

	expired := now.Add(-time.Minute)
	user = &models.User{CooldownUntil: &expired}
	if got := CooldownHoursRemaining(user, now); got != 0 {
		t.Errorf("expired cooldown should report 0 hours, got %d", got)
	}

	user = &models.User{}
	if got := CooldownHoursRemaining(user, now); got != 0 {
		t.Errorf("missing cooldown should report 0 hours, got %d", got)
	}
}
