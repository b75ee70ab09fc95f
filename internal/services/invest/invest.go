// Package invest orchestrates investment creation: cooldown gating, limit and
// cap checks, progression, and the atomic persist of the investment together
// with the user's new progression state.
package invest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/services/notify"
	"github.com/adiontis/investment-bridge/internal/services/progression"
	"github.com/adiontis/investment-bridge/internal/storage"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBusinessNotFound = errors.New("business not found or not verified")
)

// CooldownActiveError rejects an investment while the user's recovery period
// is still open.
type CooldownActiveError struct {
	HoursRemaining int
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("account in recovery period: %d hours remaining", e.HoursRemaining)
}

// LimitExceededError rejects an amount above the user's current limit
type LimitExceededError struct {
	Limit decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("investment exceeds your current limit of %s", e.Limit)
}

// BusinessCapExceededError rejects an amount above the per-business cap
type BusinessCapExceededError struct {
	Max decimal.Decimal
}

func (e *BusinessCapExceededError) Error() string {
	return fmt.Sprintf("investment exceeds the maximum of %s for this business", e.Max)
}

// Service creates investments
type Service struct {
	userRepo       *storage.UserRepository
	businessRepo   *storage.BusinessRepository
	investmentRepo *storage.InvestmentRepository
	engine         *progression.Engine
	notifier       *notify.Service

	// userLocks serializes concurrent investment requests per user so two
	// requests can't both read the same limit and overwrite each other's
	// progression result.
	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex

	now func() time.Time
}

// NewService creates a new investment service
func NewService(
	userRepo *storage.UserRepository,
	businessRepo *storage.BusinessRepository,
	investmentRepo *storage.InvestmentRepository,
	notifier *notify.Service,
) *Service {
	return &Service{
		userRepo:       userRepo,
		businessRepo:   businessRepo,
		investmentRepo: investmentRepo,
		engine:         progression.NewEngine(),
		notifier:       notifier,
		userLocks:      make(map[uuid.UUID]*sync.Mutex),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Result reports a created investment and the progression it produced
type Result struct {
	Investment  *models.Investment  `json:"investment"`
	Progression *progression.Result `json:"progression"`
	TotalCharge decimal.Decimal     `json:"total_charge"`
}

// Create places an investment for the user into the business. The whole
// read-compute-write sequence holds the user's lock.
func (s *Service) Create(userID, businessID uuid.UUID, amount decimal.Decimal) (*Result, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if progression.InCooldown(user, now) {
		return nil, &CooldownActiveError{HoursRemaining: progression.CooldownHoursRemaining(user, now)}
	}

	if amount.GreaterThan(user.MaxSpendLimit) {
		return nil, &LimitExceededError{Limit: user.MaxSpendLimit}
	}

	business, err := s.businessRepo.GetByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	if business == nil || !business.IsVerified() {
		return nil, ErrBusinessNotFound
	}

	if maxAllowed := business.MaxInvestment(); amount.GreaterThan(maxAllowed) {
		return nil, &BusinessCapExceededError{Max: maxAllowed}
	}

	prog, err := s.engine.Compute(user, amount)
	if err != nil {
		return nil, err
	}

	inv := models.NewInvestment(user.ID, business.ID, amount, business, now)
	inv.RiskPercentage = prog.RiskPercentage
	inv.GrowthIncrease = prog.GrowthIncrease

	user.MaxSpendLimit = prog.NewMaxLimit
	user.CurrentTier = prog.NewTier
	if prog.CooldownHours > 0 {
		until := now.Add(time.Duration(prog.CooldownHours) * time.Hour)
		user.CooldownUntil = &until
	} else {
		user.CooldownUntil = nil
	}

	if err := s.investmentRepo.CreateWithProgression(inv, user); err != nil {
		return nil, fmt.Errorf("failed to persist investment: %w", err)
	}

	s.notifier.InvestmentConfirmed(user.ID, business.Name, amount)
	if prog.CooldownHours > 0 {
		s.notifier.CooldownStarted(user.ID, prog.CooldownHours)
	}

	return &Result{
		Investment:  inv,
		Progression: prog,
		TotalCharge: amount.Add(inv.FeeAmount),
	}, nil
}

func (s *Service) lockFor(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}
