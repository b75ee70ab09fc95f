package rating

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

func TestScoreToGrade(t *testing.T) {
	tests := []struct {
		score string
		want  models.RiskGrade
	}{
		{"95", models.GradeA},
		{"90", models.GradeA},
		{"89.99", models.GradeB},
		{"80", models.GradeB},
		{"79.5", models.GradeC},
		{"70", models.GradeC},
		{"69", models.GradeD},
		{"60", models.GradeD},
		{"59.99", models.GradeF},
		{"0", models.GradeF},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			if got := ScoreToGrade(decimal.RequireFromString(tt.score)); got != tt.want {
				t.Errorf("ScoreToGrade(%s) = %s, want %s", tt.score, got, tt.want)
			}
		})
	}
}

func TestScoresCombine(t *testing.T) {
	// All components at 100 must combine to exactly 100 (weights sum to 1)
	full := Scores{
		RevenueConsistency: decimal.NewFromInt(100),
		PayoutHistory:      decimal.NewFromInt(100),
		InvestorReturns:    decimal.NewFromInt(100),
		Reputation:         decimal.NewFromInt(100),
		FinancialHealth:    decimal.NewFromInt(100),
	}
	if got := full.Combine(); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Combine() with all 100s = %s, want 100", got)
	}

	// Weighted mix: 85*0.25 + 70*0.30 + 50*0.25 + 80*0.15 + 90*0.05 = 71.25
	mixed := Scores{
		RevenueConsistency: decimal.NewFromInt(85),
		PayoutHistory:      decimal.NewFromInt(70),
		InvestorReturns:    decimal.NewFromInt(50),
		Reputation:         decimal.NewFromInt(80),
		FinancialHealth:    decimal.NewFromInt(90),
	}
	if got := mixed.Combine(); !got.Equal(decimal.RequireFromString("71.25")) {
		t.Errorf("Combine() = %s, want 71.25", got)
	}
}
