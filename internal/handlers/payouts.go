package handlers

import (
	"net/http"
	"time"

	"github.com/adiontis/investment-bridge/internal/middleware"
)

// PayoutHistory returns the user's payouts, newest first
func (h *Handler) PayoutHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.payoutRepo.HistoryForUser(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load payout history", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]interface{}{"payouts": items})
}

// PayoutSchedule returns the next settlement run and the user's investments
// due within the coming week.
func (h *Handler) PayoutSchedule(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now().UTC()
	nextRun := h.scheduler.NextFire(now)

	upcoming, err := h.investmentRepo.UpcomingForUser(user.ID, now.Add(7*24*time.Hour))
	if err != nil {
		h.jsonError(w, "Failed to load upcoming payouts", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]interface{}{
		"next_settlement": nextRun,
		"upcoming":        upcoming,
		"kyc_required":    !user.IsVerified(),
	})
}
