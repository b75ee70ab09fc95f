package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/adiontis/investment-bridge/internal/middleware"
	"github.com/adiontis/investment-bridge/internal/models"
)

// ListBusinesses returns the verified businesses open for investment
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.businessRepo.ListVerified()
	if err != nil {
		h.jsonError(w, "Failed to load businesses", http.StatusInternalServerError)
		return
	}

	type listing struct {
		*models.Business
		MaxInvestment    string `json:"max_investment"`
		ReturnMultiplier string `json:"return_multiplier"`
	}

	items := make([]listing, 0, len(businesses))
	for _, b := range businesses {
		items = append(items, listing{
			Business:         b,
			MaxInvestment:    b.MaxInvestment().String(),
			ReturnMultiplier: b.ReturnMultiplier().String(),
		})
	}

	h.json(w, http.StatusOK, map[string]interface{}{"businesses": items})
}

// BusinessRoutes dispatches /api/businesses/{id} and /api/businesses/{id}/rate
func (h *Handler) BusinessRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/businesses/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.jsonError(w, "Invalid business ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.businessDetail(w, r, id)
	case len(parts) == 2 && parts[1] == "rate" && r.Method == http.MethodPost:
		h.rateBusiness(w, r, id)
	default:
		h.jsonError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) businessDetail(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	business, err := h.businessRepo.GetByID(id)
	if err != nil {
		h.jsonError(w, "Failed to load business", http.StatusInternalServerError)
		return
	}
	if business == nil || !business.IsVerified() {
		h.jsonError(w, "Business not found", http.StatusNotFound)
		return
	}

	summary, err := h.businessRepo.RatingSummaryFor(id)
	if err != nil {
		h.jsonError(w, "Failed to load ratings", http.StatusInternalServerError)
		return
	}

	reviews, err := h.ratingRepo.ListRecent(id, 10)
	if err != nil {
		h.jsonError(w, "Failed to load reviews", http.StatusInternalServerError)
		return
	}

	stats, err := h.payoutRepo.CompletionStatsFor(id)
	if err != nil {
		h.jsonError(w, "Failed to load payout stats", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]interface{}{
		"business":          business,
		"max_investment":    business.MaxInvestment(),
		"return_multiplier": business.ReturnMultiplier(),
		"rating":            summary,
		"reviews":           reviews,
		"payouts": map[string]int{
			"total":     stats.Total,
			"completed": stats.Completed,
		},
	})
}

func (h *Handler) rateBusiness(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		h.jsonError(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	business, err := h.businessRepo.GetByID(id)
	if err != nil {
		h.jsonError(w, "Failed to load business", http.StatusInternalServerError)
		return
	}
	if business == nil {
		h.jsonError(w, "Business not found", http.StatusNotFound)
		return
	}

	// Only investors in the business may review it
	invested, err := h.investmentRepo.ExistsForUserAndBusiness(user.ID, id)
	if err != nil {
		h.jsonError(w, "Failed to check investments", http.StatusInternalServerError)
		return
	}
	if !invested {
		h.jsonError(w, "You can only rate businesses you have invested in", http.StatusForbidden)
		return
	}

	rating := models.NewRating(id, user.ID, input.Rating, input.Comment)
	if err := h.ratingRepo.Upsert(rating); err != nil {
		h.jsonError(w, "Failed to save rating", http.StatusInternalServerError)
		return
	}

	// Re-score the business now that its reputation changed
	grade, score, err := h.ratingService.Rate(id)
	if err != nil {
		h.jsonError(w, "Failed to update risk rating", http.StatusInternalServerError)
		return
	}

	h.json(w, http.StatusOK, map[string]interface{}{
		"rating":     rating,
		"risk_grade": grade,
		"risk_score": score,
	})
}
