package progression

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClassifyBoundaries(t *testing.T) {
	classifier := DefaultClassifier()

	tests := []struct {
		ratio string
		want  RiskLevel
	}{
		{"0", RiskLow},
		{"0.25", RiskLow},
		{"0.49", RiskLow},
		{"0.50", RiskMedium}, // boundaries are closed on the lower edge
		{"0.75", RiskMedium},
		{"0.98", RiskMedium},
		{"0.99", RiskHigh},
		{"0.995", RiskHigh},
		{"1.00", RiskAllIn},
		{"1.50", RiskAllIn},
	}

	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			band := classifier.Classify(decimal.RequireFromString(tt.ratio))
			if band.Level != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.ratio, band.Level, tt.want)
			}
		})
	}
}

func TestBandRewardsAndCooldowns(t *testing.T) {
	classifier := DefaultClassifier()

	allIn := classifier.Classify(decimal.NewFromInt(1))
	if !allIn.Multiplier.Equal(decimal.NewFromFloat(3.0)) || allIn.CooldownHours != 24 {
		t.Errorf("all-in band = x%s / %dh, want x3 / 24h", allIn.Multiplier, allIn.CooldownHours)
	}

	high := classifier.Classify(decimal.RequireFromString("0.99"))
	if !high.Multiplier.Equal(decimal.NewFromFloat(2.0)) || high.CooldownHours != 12 {
		t.Errorf("high band = x%s / %dh, want x2 / 12h", high.Multiplier, high.CooldownHours)
	}

	medium := classifier.Classify(decimal.RequireFromString("0.50"))
	if !medium.Multiplier.Equal(decimal.NewFromFloat(1.5)) || medium.CooldownHours != 0 {
		t.Errorf("medium band = x%s / %dh, want x1.5 / 0h", medium.Multiplier, medium.CooldownHours)
	}
}

func TestTierFor(t *testing.T) {
	table := DefaultTierTable()

	tests := []struct {
		limit string
		want  int
	}{
		{"35", 1},
		{"249.99", 1},
		{"250", 2},
		{"999.99", 2},
		{"1000", 3},
		{"1999.99", 3},
		{"2000", 4},
		{"2999.99", 4},
		{"3000", 4}, // top tier is closed-ended at its max
	}

	for _, tt := range tests {
		t.Run(tt.limit, func(t *testing.T) {
			tier := table.TierFor(decimal.RequireFromString(tt.limit))
			if tier.Level != tt.want {
				t.Errorf("TierFor(%s) = tier %d, want %d", tt.limit, tier.Level, tt.want)
			}
		})
	}
}
