package progression

import "github.com/shopspring/decimal"

// RiskLevel is the band assigned to an investment's amount/limit ratio
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
	RiskAllIn  RiskLevel = "all_in"
)

// Band couples a risk level with its reward multiplier and cooldown.
// Threshold is the lowest ratio (inclusive) that lands in the band.
type Band struct {
	Level         RiskLevel       `json:"level"`
	Threshold     decimal.Decimal `json:"threshold"`
	Multiplier    decimal.Decimal `json:"multiplier"`
	CooldownHours int             `json:"cooldown_hours"`
}

// Classifier maps an amount/limit ratio to a band. Bands are ordered highest
// threshold first so a ratio exactly on a boundary resolves to the more
// conservative band (higher multiplier, longer cooldown).
type Classifier struct {
	bands []Band
}

// DefaultClassifier returns the standard four-band ladder
func DefaultClassifier() Classifier {
	return Classifier{bands: []Band{
		{Level: RiskAllIn, Threshold: decimal.NewFromFloat(1.00), Multiplier: decimal.NewFromFloat(3.0), CooldownHours: 24},
		{Level: RiskHigh, Threshold: decimal.NewFromFloat(0.99), Multiplier: decimal.NewFromFloat(2.0), CooldownHours: 12},
		{Level: RiskMedium, Threshold: decimal.NewFromFloat(0.50), Multiplier: decimal.NewFromFloat(1.5), CooldownHours: 0},
		{Level: RiskLow, Threshold: decimal.Zero, Multiplier: decimal.NewFromFloat(1.0), CooldownHours: 0},
	}}
}

// Classify returns the band for the given amount/limit ratio
func (c Classifier) Classify(ratio decimal.Decimal) Band {
	for _, b := range c.bands {
		if ratio.GreaterThanOrEqual(b.Threshold) {
			return b
		}
	}
	return c.bands[len(c.bands)-1]
}
