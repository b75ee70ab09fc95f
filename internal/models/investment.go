package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentStatus is the lifecycle state of an investment. Transitions only
// ever move forward: pending_escrow -> released -> paid.
type InvestmentStatus string

const (
	InvestmentPendingEscrow InvestmentStatus = "pending_escrow"
	InvestmentReleased      InvestmentStatus = "released"
	// InvestmentProcessing exists in the persisted vocabulary but investments
	// skip it in practice; only payouts pass through a processing phase.
	InvestmentProcessing InvestmentStatus = "processing"
	InvestmentPaid       InvestmentStatus = "paid"
)

// statusOrder assigns each state its position in the forward-only lifecycle
var statusOrder = map[InvestmentStatus]int{
	InvestmentPendingEscrow: 0,
	InvestmentReleased:      1,
	InvestmentProcessing:    2,
	InvestmentPaid:          3,
}

// CanTransitionTo reports whether moving to next would go forward
func (s InvestmentStatus) CanTransitionTo(next InvestmentStatus) bool {
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to > from
}

// PlatformFeeRate is the 2% fee charged on every investment at creation
var PlatformFeeRate = decimal.NewFromFloat(0.02)

// EscrowPeriod is how long funds sit in escrow before becoming payable
const EscrowPeriod = 7 * 24 * time.Hour

// Investment represents one user's stake in a business. Only Status (and
// UpdatedAt) change after creation; every other field is fixed.
type Investment struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	BusinessID     uuid.UUID        `json:"business_id"`
	Amount         decimal.Decimal  `json:"amount"`
	FeeAmount      decimal.Decimal  `json:"fee_amount"`
	Status         InvestmentStatus `json:"status"`
	RiskPercentage decimal.Decimal  `json:"risk_percentage"` // amount/limit at creation, in percent
	GrowthIncrease decimal.Decimal  `json:"growth_increase"`
	ExpectedReturn decimal.Decimal  `json:"expected_return"`
	PayoutDate     time.Time        `json:"payout_date"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewInvestment creates an escrowed investment with the 2% platform fee and
// the expected return locked in from the business's current grade.
func NewInvestment(userID, businessID uuid.UUID, amount decimal.Decimal, business *Business, now time.Time) *Investment {
	return &Investment{
		ID:             uuid.New(),
		UserID:         userID,
		BusinessID:     businessID,
		Amount:         amount,
		FeeAmount:      amount.Mul(PlatformFeeRate),
		Status:         InvestmentPendingEscrow,
		ExpectedReturn: amount.Mul(business.ReturnMultiplier()),
		PayoutDate:     now.Add(EscrowPeriod),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Profit is the gain over principal; negative on a loss
func (i *Investment) Profit() decimal.Decimal {
	return i.ExpectedReturn.Sub(i.Amount)
}
