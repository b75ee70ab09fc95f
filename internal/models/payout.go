package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus is the payout record's own lifecycle:
// pending -> processing -> paid.
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutPaid       PayoutStatus = "paid"
)

// ProfitFeeRate is the 5% fee taken on realized profit, never on principal
var ProfitFeeRate = decimal.NewFromFloat(0.05)

// Payout is the settlement record for a single investment. Exactly one payout
// exists per investment that reaches settlement.
type Payout struct {
	ID           uuid.UUID       `json:"id"`
	InvestmentID uuid.UUID       `json:"investment_id"`
	UserID       uuid.UUID       `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`     // net of the profit fee
	FeeAmount    decimal.Decimal `json:"fee_amount"` // profit fee withheld
	Status       PayoutStatus    `json:"status"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NetPayout computes the amount owed for an investment's expected return.
// The 5% fee applies only to profit; a break-even or losing investment pays
// out its full expected return.
func NetPayout(inv *Investment) (net, fee decimal.Decimal) {
	profit := inv.Profit()
	if profit.IsPositive() {
		fee = profit.Mul(ProfitFeeRate)
	} else {
		fee = decimal.Zero
	}
	return inv.ExpectedReturn.Sub(fee), fee
}

// NewPayout creates the processing-state payout for an investment entering
// settlement, with the net amount and profit fee computed from its expected
// return.
func NewPayout(inv *Investment, now time.Time) *Payout {
	net, fee := NetPayout(inv)
	processed := now
	return &Payout{
		ID:           uuid.New(),
		InvestmentID: inv.ID,
		UserID:       inv.UserID,
		Amount:       net,
		FeeAmount:    fee,
		Status:       PayoutProcessing,
		ProcessedAt:  &processed,
		CreatedAt:    now,
	}
}
