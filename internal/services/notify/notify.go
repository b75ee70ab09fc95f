// Package notify records in-app notifications for later display. Delivery to
// external channels (email, SMS) is intentionally out of scope; failures are
// logged and never block the calling flow.
package notify

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/storage"
)

// Service writes notification rows
type Service struct {
	repo *storage.NotificationRepository
}

// NewService creates a new notification service
func NewService(repo *storage.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// InvestmentConfirmed records that an investment entered escrow
func (s *Service) InvestmentConfirmed(userID uuid.UUID, businessName string, amount decimal.Decimal) {
	s.save(models.NewNotification(userID, models.NotificationInvestment,
		"Investment Confirmed",
		fmt.Sprintf("Your $%s investment in %s is now in escrow", amount.StringFixed(2), businessName),
	))
}

// PayoutCompleted records a finished payout
func (s *Service) PayoutCompleted(userID uuid.UUID, amount decimal.Decimal) {
	s.save(models.NewNotification(userID, models.NotificationPayout,
		"Payout Received",
		fmt.Sprintf("You've received a payout of $%s", amount.StringFixed(2)),
	))
}

// CooldownStarted records the start of a recovery period
func (s *Service) CooldownStarted(userID uuid.UUID, hours int) {
	s.save(models.NewNotification(userID, models.NotificationCooldown,
		"Account Recovery Period",
		fmt.Sprintf("Your investment limit is recalibrating. %d hours remaining.", hours),
	))
}

// KYCReminder nudges an unverified user blocking their own payouts
func (s *Service) KYCReminder(userID uuid.UUID) {
	s.save(models.NewNotification(userID, models.NotificationKYC,
		"Complete Verification",
		"Complete your KYC verification to receive payouts",
	))
}

func (s *Service) save(n *models.Notification) {
	if s == nil || s.repo == nil {
		return
	}
	if err := s.repo.Create(n); err != nil {
		log.Printf("failed to store notification for user %s: %v", n.UserID, err)
	}
}
