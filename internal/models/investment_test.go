package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestStatusTransitionsForwardOnly(t *testing.T) {
	tests := []struct {
		name    string
		from    InvestmentStatus
		to      InvestmentStatus
		allowed bool
	}{
		{"escrow to released", InvestmentPendingEscrow, InvestmentReleased, true},
		{"escrow to paid", InvestmentPendingEscrow, InvestmentPaid, true},
		{"released to paid", InvestmentReleased, InvestmentPaid, true},
		{"released back to escrow", InvestmentReleased, InvestmentPendingEscrow, false},
		{"paid back to released", InvestmentPaid, InvestmentReleased, false},
		{"paid is terminal", InvestmentPaid, InvestmentPaid, false},
		{"unknown status", InvestmentStatus("refunded"), InvestmentPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestNewInvestmentFeesAndReturn(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	business := &Business{
		ID:             uuid.New(),
		RiskRating:     GradeB,
		MonthlyRevenue: decimal.NewFromInt(8500),
	}

	inv := NewInvestment(uuid.New(), business.ID, decimal.NewFromInt(20), business, now)

	if !inv.FeeAmount.Equal(decimal.NewFromFloat(0.40)) {
		t.Errorf("fee = %s, want 0.40", inv.FeeAmount)
	}
	if !inv.ExpectedReturn.Equal(decimal.NewFromFloat(22.4)) {
		t.Errorf("expected return = %s, want 22.4", inv.ExpectedReturn)
	}
	if inv.Status != InvestmentPendingEscrow {
		t.Errorf("status = %s, want pending_escrow", inv.Status)
	}
	if want := now.Add(7 * 24 * time.Hour); !inv.PayoutDate.Equal(want) {
		t.Errorf("payout date = %v, want %v", inv.PayoutDate, want)
	}
}

func TestNetPayout(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		expectedReturn string
		wantNet        string
		wantFee        string
	}{
		{"profit pays 5% fee on the gain", "100", "112", "111.40", "0.60"},
		{"loss pays no fee", "100", "95", "95", "0"},
		{"break-even pays no fee", "100", "100", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Investment{
				Amount:         decimal.RequireFromString(tt.amount),
				ExpectedReturn: decimal.RequireFromString(tt.expectedReturn),
			}
			net, fee := NetPayout(inv)
			if !net.Equal(decimal.RequireFromString(tt.wantNet)) {
				t.Errorf("net = %s, want %s", net, tt.wantNet)
			}
			if !fee.Equal(decimal.RequireFromString(tt.wantFee)) {
				t.Errorf("fee = %s, want %s", fee, tt.wantFee)
			}
		})
	}
}
