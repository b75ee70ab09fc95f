package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/middleware"
	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/services/invest"
	"github.com/adiontis/investment-bridge/internal/services/progression"
	"github.com/adiontis/investment-bridge/internal/storage"
)

// CreateInvestment places an investment into a business
func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		BusinessID string          `json:"business_id"`
		Amount     decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	businessID, err := uuid.Parse(input.BusinessID)
	if err != nil {
		h.jsonError(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	result, err := h.investService.Create(user.ID, businessID, input.Amount)
	if err != nil {
		h.investError(w, err)
		return
	}

	h.json(w, http.StatusCreated, result)
}

// investError maps investment service errors onto HTTP responses
func (h *Handler) investError(w http.ResponseWriter, err error) {
	var cooldownErr *invest.CooldownActiveError
	var limitErr *invest.LimitExceededError
	var capErr *invest.BusinessCapExceededError

	switch {
	case errors.As(err, &cooldownErr):
		w.Header().Set("Retry-After", strconv.Itoa(cooldownErr.HoursRemaining*3600))
		h.json(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":           cooldownErr.Error(),
			"hours_remaining": cooldownErr.HoursRemaining,
		})
	case errors.As(err, &limitErr):
		h.json(w, http.StatusBadRequest, map[string]interface{}{
			"error": limitErr.Error(),
			"limit": limitErr.Limit,
		})
	case errors.As(err, &capErr):
		h.json(w, http.StatusBadRequest, map[string]interface{}{
			"error":          capErr.Error(),
			"max_investment": capErr.Max,
		})
	case errors.Is(err, progression.ErrInvalidAmount):
		h.jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, invest.ErrBusinessNotFound):
		h.jsonError(w, "Business not found", http.StatusNotFound)
	case errors.Is(err, invest.ErrUserNotFound):
		h.jsonError(w, "User not found", http.StatusNotFound)
	default:
		h.jsonError(w, "Failed to create investment", http.StatusInternalServerError)
	}
}

// Portfolio returns the user's investments grouped by status
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.investmentRepo.PortfolioForUser(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}

	grouped := map[models.InvestmentStatus][]*storage.PortfolioItem{
		models.InvestmentPendingEscrow: {},
		models.InvestmentReleased:      {},
		models.InvestmentPaid:          {},
	}
	for _, item := range items {
		grouped[item.Status] = append(grouped[item.Status], item)
	}

	stats, err := h.investmentRepo.StatsForUser(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]interface{}{
		"investments": grouped,
		"stats":       stats,
	})
}
