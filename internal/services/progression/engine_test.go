package progression

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

func userWithLimit(limit string) *models.User {
	return &models.User{
		MaxSpendLimit: decimal.RequireFromString(limit),
		CurrentTier:   1,
	}
}

func TestComputeRejectsBelowMinimum(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Compute(userWithLimit("35"), decimal.NewFromFloat(4.99))
	if err != ErrInvalidAmount {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}

	if _, err := engine.Compute(userWithLimit("35"), decimal.NewFromInt(5)); err != nil {
		t.Fatalf("amount exactly $5 should be accepted, got %v", err)
	}
}

func TestComputeScenarios(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name          string
		limit         string
		amount        string
		wantLevel     RiskLevel
		wantGrowth    string
		wantNewLimit  string
		wantNewTier   int
		wantCooldown  int
		wantCapped    bool
	}{
		{
			// ratio 20/35 ~ 0.571 -> medium; raw 20*0.50=10; growth 10*1.5=15
			name: "tier 1 medium bet", limit: "35", amount: "20",
			wantLevel: RiskMedium, wantGrowth: "15", wantNewLimit: "50",
			wantNewTier: 1, wantCooldown: 0, wantCapped: false,
		},
		{
			// ratio exactly 1.0 -> all-in; raw 17.5; adjusted 52.5 under cap
			name: "tier 1 all-in bet", limit: "35", amount: "35",
			wantLevel: RiskAllIn, wantGrowth: "52.5", wantNewLimit: "87.5",
			wantNewTier: 1, wantCooldown: 24, wantCapped: false,
		},
		{
			// raw 2000*1.50=3000, adjusted 9000, capped to 500
			name: "tier 4 all-in hits the growth cap", limit: "2000", amount: "2000",
			wantLevel: RiskAllIn, wantGrowth: "500", wantNewLimit: "2500",
			wantNewTier: 4, wantCooldown: 24, wantCapped: true,
		},
		{
			// growth would push past 3000; the global ceiling holds
			name: "global limit ceiling", limit: "2900", amount: "2900",
			wantLevel: RiskAllIn, wantGrowth: "500", wantNewLimit: "3000",
			wantNewTier: 4, wantCooldown: 24, wantCapped: true,
		},
		{
			// small bet relative to a tier 2 limit
			name: "tier 2 low risk", limit: "300", amount: "30",
			wantLevel: RiskLow, wantGrowth: "22.5", wantNewLimit: "322.5",
			wantNewTier: 2, wantCooldown: 0, wantCapped: false,
		},
		{
			// growth crosses the tier 1 / tier 2 boundary
			name: "promotion to tier 2", limit: "240", amount: "240",
			wantLevel: RiskAllIn, wantGrowth: "360", wantNewLimit: "600",
			wantNewTier: 2, wantCooldown: 24, wantCapped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Compute(userWithLimit(tt.limit), decimal.RequireFromString(tt.amount))
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if res.RiskLevel != tt.wantLevel {
				t.Errorf("risk level = %s, want %s", res.RiskLevel, tt.wantLevel)
			}
			if !res.GrowthIncrease.Equal(decimal.RequireFromString(tt.wantGrowth)) {
				t.Errorf("growth = %s, want %s", res.GrowthIncrease, tt.wantGrowth)
			}
			if !res.NewMaxLimit.Equal(decimal.RequireFromString(tt.wantNewLimit)) {
				t.Errorf("new limit = %s, want %s", res.NewMaxLimit, tt.wantNewLimit)
			}
			if res.NewTier != tt.wantNewTier {
				t.Errorf("new tier = %d, want %d", res.NewTier, tt.wantNewTier)
			}
			if res.CooldownHours != tt.wantCooldown {
				t.Errorf("cooldown = %dh, want %dh", res.CooldownHours, tt.wantCooldown)
			}
			if res.WasCapReached != tt.wantCapped {
				t.Errorf("cap reached = %v, want %v", res.WasCapReached, tt.wantCapped)
			}
		})
	}
}

func TestComputeIsMonotonicAndBounded(t *testing.T) {
	engine := NewEngine()
	user := userWithLimit("2000")

	prev := decimal.Zero
	for amount := int64(5); amount <= 2000; amount += 5 {
		res, err := engine.Compute(user, decimal.NewFromInt(amount))
		if err != nil {
			t.Fatalf("Compute(%d) error: %v", amount, err)
		}
		if res.NewMaxLimit.LessThan(prev) {
			t.Fatalf("newMaxLimit decreased at amount %d: %s < %s", amount, res.NewMaxLimit, prev)
		}
		if res.NewMaxLimit.GreaterThan(decimal.NewFromInt(3000)) {
			t.Fatalf("newMaxLimit %s exceeds 3000", res.NewMaxLimit)
		}
		if res.GrowthIncrease.GreaterThan(decimal.NewFromInt(500)) {
			t.Fatalf("growth %s exceeds the 500 per-transaction cap", res.GrowthIncrease)
		}
		prev = res.NewMaxLimit
	}
}

func TestComputeIsPure(t *testing.T) {
	engine := NewEngine()
	user := userWithLimit("35")
	amount := decimal.NewFromInt(20)

	first, err := engine.Compute(user, amount)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, err := engine.Compute(user, amount)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if !first.NewMaxLimit.Equal(second.NewMaxLimit) || first.RiskLevel != second.RiskLevel {
		t.Error("identical inputs produced different results")
	}
	if !user.MaxSpendLimit.Equal(decimal.NewFromInt(35)) {
		t.Errorf("Compute mutated the user's limit: %s", user.MaxSpendLimit)
	}
	if user.CurrentTier != 1 {
		t.Errorf("Compute mutated the user's tier: %d", user.CurrentTier)
	}
}
