package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReturnMultiplier(t *testing.T) {
	tests := []struct {
		grade RiskGrade
		want  string
	}{
		{GradeA, "1.08"},
		{GradeB, "1.12"},
		{GradeC, "1.15"},
		{GradeD, "1.18"},
		{GradeF, "1.2"},
		{RiskGrade(""), "1.1"},  // unknown grade falls back to the default
		{RiskGrade("Z"), "1.1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.grade), func(t *testing.T) {
			b := &Business{RiskRating: tt.grade}
			if got := b.ReturnMultiplier(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ReturnMultiplier(%q) = %s, want %s", tt.grade, got, tt.want)
			}
		})
	}
}

func TestMaxInvestment(t *testing.T) {
	b := &Business{MonthlyRevenue: decimal.NewFromInt(15000)}
	if got := b.MaxInvestment(); !got.Equal(decimal.NewFromInt(4500)) {
		t.Errorf("MaxInvestment() = %s, want 4500", got)
	}
}
