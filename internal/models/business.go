package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskGrade is the letter grade assigned by the business risk scorer
type RiskGrade string

const (
	GradeA RiskGrade = "A"
	GradeB RiskGrade = "B"
	GradeC RiskGrade = "C"
	GradeD RiskGrade = "D"
	GradeF RiskGrade = "F"
)

// returnMultipliers maps a risk grade to the investor return multiplier.
// Riskier businesses pay out more.
var returnMultipliers = map[RiskGrade]decimal.Decimal{
	GradeA: decimal.NewFromFloat(1.08),
	GradeB: decimal.NewFromFloat(1.12),
	GradeC: decimal.NewFromFloat(1.15),
	GradeD: decimal.NewFromFloat(1.18),
	GradeF: decimal.NewFromFloat(1.20),
}

// defaultReturnMultiplier applies when a business carries an unknown grade
var defaultReturnMultiplier = decimal.NewFromFloat(1.10)

// businessCapRate limits any single investment to 30% of monthly revenue
var businessCapRate = decimal.NewFromFloat(0.30)

// Business represents a company accepting micro-investments
type Business struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	OwnerID            *uuid.UUID      `json:"owner_id,omitempty"`
	LLCVerified        bool            `json:"llc_verified"`
	BankVerified       bool            `json:"bank_verified"`
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	RiskRating         RiskGrade       `json:"risk_rating"`
	RiskScore          int             `json:"risk_score"`
	VideoURL           string          `json:"video_url,omitempty"`
	VerificationStatus string          `json:"verification_status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IsVerified reports whether the business may accept investments
func (b *Business) IsVerified() bool {
	return b.VerificationStatus == "verified"
}

// ReturnMultiplier returns the payout multiplier for the business's grade.
// The multiplier is captured on the investment at creation time and never
// recomputed, so later grade changes don't affect open investments.
func (b *Business) ReturnMultiplier() decimal.Decimal {
	if m, ok := returnMultipliers[b.RiskRating]; ok {
		return m
	}
	return defaultReturnMultiplier
}

// MaxInvestment is the per-user cap for this business (30% of monthly revenue)
func (b *Business) MaxInvestment() decimal.Decimal {
	return b.MonthlyRevenue.Mul(businessCapRate)
}

// Rating is a 1-5 star review left by an investor
type Rating struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	UserID     uuid.UUID `json:"user_id"`
	Stars      int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRating creates a review for a business
func NewRating(businessID, userID uuid.UUID, stars int, comment string) *Rating {
	return &Rating{
		ID:         uuid.New(),
		BusinessID: businessID,
		UserID:     userID,
		Stars:      stars,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
}
