package progression

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

// ErrInvalidAmount rejects investments below the $5 minimum
var ErrInvalidAmount = errors.New("minimum investment is $5")

// MinInvestment is the smallest accepted investment amount
var MinInvestment = decimal.NewFromInt(5)

// MaxGrowthPerTransaction caps how much a single investment can raise the
// limit, so one high-risk bet can't skip past intermediate exposure.
var MaxGrowthPerTransaction = decimal.NewFromInt(500)

// Result is the proposed next progression state for a user after one
// investment event. The caller persists it; the engine never writes.
type Result struct {
	RiskPercentage decimal.Decimal `json:"risk_percentage"` // ratio as a percentage
	RiskLevel      RiskLevel       `json:"risk_level"`
	GrowthIncrease decimal.Decimal `json:"growth_increase"`
	NewMaxLimit    decimal.Decimal `json:"new_max_limit"`
	NewTier        int             `json:"new_tier"`
	CooldownHours  int             `json:"cooldown_hours"`
	WasCapReached  bool            `json:"was_cap_reached"`
}

// Engine composes the tier table and risk classifier into the progression
// computation. It is a pure function of (user state, amount): deterministic,
// no side effects, safe to retry.
type Engine struct {
	tiers      TierTable
	classifier Classifier
}

// NewEngine creates an engine over the standard tables
func NewEngine() *Engine {
	return &Engine{
		tiers:      DefaultTierTable(),
		classifier: DefaultClassifier(),
	}
}

// Compute derives the user's next limit, tier, risk classification and
// cooldown for a proposed investment amount.
func (e *Engine) Compute(user *models.User, amount decimal.Decimal) (*Result, error) {
	if amount.LessThan(MinInvestment) {
		return nil, ErrInvalidAmount
	}

	tier := e.tiers.TierFor(user.MaxSpendLimit)
	ratio := amount.Div(user.MaxSpendLimit)
	band := e.classifier.Classify(ratio)

	rawIncrease := amount.Mul(tier.BaseGrowthRate)
	riskAdjusted := rawIncrease.Mul(band.Multiplier)

	growth := riskAdjusted
	capReached := false
	if riskAdjusted.GreaterThan(MaxGrowthPerTransaction) {
		growth = MaxGrowthPerTransaction
		capReached = true
	}

	newLimit := user.MaxSpendLimit.Add(growth)
	if newLimit.GreaterThan(e.tiers.MaxLimit()) {
		newLimit = e.tiers.MaxLimit()
	}

	return &Result{
		RiskPercentage: ratio.Mul(decimal.NewFromInt(100)),
		RiskLevel:      band.Level,
		GrowthIncrease: growth,
		NewMaxLimit:    newLimit,
		NewTier:        e.tiers.TierFor(newLimit).Level,
		CooldownHours:  band.CooldownHours,
		WasCapReached:  capReached,
	}, nil
}
