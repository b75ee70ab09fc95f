package progression

import (
	"math"
	"time"

	"github.com/adiontis/investment-bridge/internal/models"
)

// InCooldown reports whether the user's cooldown window is still open at now.
// An active cooldown blocks every new investment until it expires; no later
// event can shorten or replace it.
func InCooldown(user *models.User, now time.Time) bool {
	return user.CooldownUntil != nil && now.Before(*user.CooldownUntil)
}

// CooldownHoursRemaining returns the whole hours left until the cooldown
// expires, rounded up. Zero when no cooldown is active.
func CooldownHoursRemaining(user *models.User, now time.Time) int {
	if !InCooldown(user, now) {
		return 0
	}
	return int(math.Ceil(user.CooldownUntil.Sub(now).Hours()))
}
