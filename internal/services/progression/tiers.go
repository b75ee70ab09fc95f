// Package progression implements the risk-reward progression rules that grow
// or shrink a user's spending limit after each investment.
package progression

import "github.com/shopspring/decimal"

// Tier is one bracket of spending-limit ranges with its base growth rate.
// A limit belongs to the first tier whose [Min, Max) range contains it; the
// top tier is closed-ended and catches everything from its Min up.
type Tier struct {
	Level          int             `json:"level"`
	Min            decimal.Decimal `json:"min"`
	Max            decimal.Decimal `json:"max"`
	BaseGrowthRate decimal.Decimal `json:"base_growth_rate"`
}

// TierTable is an immutable ordered set of tiers, lowest first
type TierTable struct {
	tiers []Tier
}

// DefaultTierTable returns the standard four-tier ladder from $35 to $3000
func DefaultTierTable() TierTable {
	return TierTable{tiers: []Tier{
		{Level: 1, Min: decimal.NewFromInt(35), Max: decimal.NewFromInt(250), BaseGrowthRate: decimal.NewFromFloat(0.50)},
		{Level: 2, Min: decimal.NewFromInt(250), Max: decimal.NewFromInt(1000), BaseGrowthRate: decimal.NewFromFloat(0.75)},
		{Level: 3, Min: decimal.NewFromInt(1000), Max: decimal.NewFromInt(2000), BaseGrowthRate: decimal.NewFromFloat(1.00)},
		{Level: 4, Min: decimal.NewFromInt(2000), Max: decimal.NewFromInt(3000), BaseGrowthRate: decimal.NewFromFloat(1.50)},
	}}
}

// TierFor finds the tier containing the given limit. Limits at or above the
// top tier's minimum land in the top tier regardless of its Max.
func (t TierTable) TierFor(limit decimal.Decimal) Tier {
	for i, tier := range t.tiers {
		if i == len(t.tiers)-1 {
			break
		}
		if limit.GreaterThanOrEqual(tier.Min) && limit.LessThan(tier.Max) {
			return tier
		}
	}
	return t.tiers[len(t.tiers)-1]
}

// MaxLimit is the global cap on any user's spending limit
func (t TierTable) MaxLimit() decimal.Decimal {
	return t.tiers[len(t.tiers)-1].Max
}

// Tiers returns a copy of the table for display purposes
func (t TierTable) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}
