// Package handlers provides HTTP request handlers
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/adiontis/investment-bridge/internal/config"
	"github.com/adiontis/investment-bridge/internal/services/auth"
	"github.com/adiontis/investment-bridge/internal/services/invest"
	"github.com/adiontis/investment-bridge/internal/services/rating"
	"github.com/adiontis/investment-bridge/internal/services/settlement"
	"github.com/adiontis/investment-bridge/internal/storage"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg              *config.Config
	authService      *auth.Service
	investService    *invest.Service
	ratingService    *rating.Service
	scheduler        *settlement.Scheduler
	userRepo         *storage.UserRepository
	businessRepo     *storage.BusinessRepository
	investmentRepo   *storage.InvestmentRepository
	payoutRepo       *storage.PayoutRepository
	ratingRepo       *storage.RatingRepository
	notificationRepo *storage.NotificationRepository
}

// New creates a new handler with all dependencies
func New(
	cfg *config.Config,
	authService *auth.Service,
	investService *invest.Service,
	ratingService *rating.Service,
	scheduler *settlement.Scheduler,
	userRepo *storage.UserRepository,
	businessRepo *storage.BusinessRepository,
	investmentRepo *storage.InvestmentRepository,
	payoutRepo *storage.PayoutRepository,
	ratingRepo *storage.RatingRepository,
	notificationRepo *storage.NotificationRepository,
) *Handler {
	return &Handler{
		cfg:              cfg,
		authService:      authService,
		investService:    investService,
		ratingService:    ratingService,
		scheduler:        scheduler,
		userRepo:         userRepo,
		businessRepo:     businessRepo,
		investmentRepo:   investmentRepo,
		payoutRepo:       payoutRepo,
		ratingRepo:       ratingRepo,
		notificationRepo: notificationRepo,
	}
}

// json writes a JSON response with the given status
func (h *Handler) json(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.json(w, status, map[string]string{"error": message})
}
