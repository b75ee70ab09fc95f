package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/middleware"
	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/services/progression"
)

// Dashboard returns the user's profile, tier progress and activity summary
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.investmentRepo.StatsForUser(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	recent, err := h.investmentRepo.PortfolioForUser(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load investments", http.StatusInternalServerError)
		return
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	now := time.Now().UTC()
	cooldown := map[string]interface{}{"active": progression.InCooldown(user, now)}
	if progression.InCooldown(user, now) {
		cooldown["hours_remaining"] = progression.CooldownHoursRemaining(user, now)
		cooldown["until"] = user.CooldownUntil
	}

	h.json(w, http.StatusOK, map[string]interface{}{
		"user":     user,
		"stats":    stats,
		"recent":   recent,
		"cooldown": cooldown,
		"tier":     tierProgress(user),
	})
}

// tierProgress describes where the user's limit sits on the tier ladder
func tierProgress(user *models.User) map[string]interface{} {
	table := progression.DefaultTierTable()
	tier := table.TierFor(user.MaxSpendLimit)

	progress := map[string]interface{}{
		"level":            tier.Level,
		"base_growth_rate": tier.BaseGrowthRate,
		"limit":            user.MaxSpendLimit,
		"max_limit":        table.MaxLimit(),
		"ladder":           table.Tiers(),
	}

	if user.MaxSpendLimit.LessThan(table.MaxLimit()) {
		remaining := tier.Max.Sub(user.MaxSpendLimit)
		span := tier.Max.Sub(tier.Min)
		progress["to_next_tier"] = remaining
		progress["percent_through_tier"] = decimal.NewFromInt(100).Sub(
			remaining.Div(span).Mul(decimal.NewFromInt(100)).Round(2))
	}

	return progress
}

// VerifyKYC marks the user's identity as verified. Verification is
// self-service here; a production deployment would call out to a KYC vendor.
func (h *Handler) VerifyKYC(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if user.IsVerified() {
		h.json(w, http.StatusOK, map[string]string{"kyc_status": string(user.KYCStatus)})
		return
	}

	if err := h.userRepo.UpdateKYCStatus(user.ID, models.KYCVerified); err != nil {
		h.jsonError(w, "Failed to update KYC status", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]string{"kyc_status": string(models.KYCVerified)})
}

// Notifications lists the user's recent notifications
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.notificationRepo.ListByUser(user.ID, 50)
	if err != nil {
		h.jsonError(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]interface{}{"notifications": items})
}

// NotificationRoutes dispatches /api/notifications/{id}/read
func (h *Handler) NotificationRoutes(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/notifications/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "read" || r.Method != http.MethodPost {
		h.jsonError(w, "Not found", http.StatusNotFound)
		return
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.jsonError(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	if err := h.notificationRepo.MarkRead(id); err != nil {
		h.jsonError(w, "Failed to mark notification read", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]string{"status": "read"})
}
