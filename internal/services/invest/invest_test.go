package invest

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/services/progression"
	"github.com/adiontis/investment-bridge/internal/storage"
)

type fixture struct {
	db       *storage.DB
	users    *storage.UserRepository
	service  *Service
	user     *models.User
	business *models.Business
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	f := &fixture{
		db:    db,
		users: storage.NewUserRepository(db),
	}
	f.service = NewService(
		f.users,
		storage.NewBusinessRepository(db),
		storage.NewInvestmentRepository(db),
		nil,
	)

	f.user = models.NewUser("investor@example.com", "Ada", "Marsh", "", "hash")
	f.user.KYCStatus = models.KYCVerified
	if err := f.users.Create(f.user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	now := time.Now().UTC()
	f.business = &models.Business{
		ID:                 uuid.New(),
		Name:               "Urban Farming Co",
		MonthlyRevenue:     decimal.NewFromInt(8500),
		RiskRating:         models.GradeB,
		RiskScore:          85,
		VerificationStatus: "verified",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := storage.NewBusinessRepository(db).Create(f.business); err != nil {
		t.Fatalf("failed to create business: %v", err)
	}

	return f
}

func TestCreatePersistsInvestmentAndProgression(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Create(f.user.ID, f.business.ID, decimal.NewFromInt(20))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if !res.Investment.FeeAmount.Equal(decimal.RequireFromString("0.4")) {
		t.Errorf("fee = %s, want 0.4", res.Investment.FeeAmount)
	}
	if !res.Investment.ExpectedReturn.Equal(decimal.RequireFromString("22.4")) {
		t.Errorf("expected return = %s, want 22.4", res.Investment.ExpectedReturn)
	}
	if !res.TotalCharge.Equal(decimal.RequireFromString("20.4")) {
		t.Errorf("total charge = %s, want 20.4", res.TotalCharge)
	}
	if res.Progression.RiskLevel != progression.RiskMedium {
		t.Errorf("risk level = %s, want medium", res.Progression.RiskLevel)
	}

	// The user's limit advanced from 35 to 50 and was persisted
	stored, err := f.users.GetByID(f.user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if !stored.MaxSpendLimit.Equal(decimal.NewFromInt(50)) {
		t.Errorf("stored limit = %s, want 50", stored.MaxSpendLimit)
	}
	if stored.CurrentTier != 1 {
		t.Errorf("stored tier = %d, want 1", stored.CurrentTier)
	}
	if stored.CooldownUntil != nil {
		t.Error("a medium-risk bet should not set a cooldown")
	}
}

func TestCreateAllInSetsCooldownAndBlocksNextBet(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Create(f.user.ID, f.business.ID, decimal.NewFromInt(35)); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	stored, _ := f.users.GetByID(f.user.ID)
	if stored.CooldownUntil == nil {
		t.Fatal("all-in bet should set a cooldown")
	}

	_, err := f.service.Create(f.user.ID, f.business.ID, decimal.NewFromInt(10))
	var cooldownErr *CooldownActiveError
	if !errors.As(err, &cooldownErr) {
		t.Fatalf("err = %v, want CooldownActiveError", err)
	}
	if cooldownErr.HoursRemaining < 1 || cooldownErr.HoursRemaining > 24 {
		t.Errorf("hours remaining = %d, want within (0, 24]", cooldownErr.HoursRemaining)
	}
}

func TestCreateRejections(t *testing.T) {
	f := newFixture(t)

	t.Run("below minimum", func(t *testing.T) {
		_, err := f.service.Create(f.user.ID, f.business.ID, decimal.NewFromInt(4))
		if !errors.Is(err, progression.ErrInvalidAmount) {
			t.Errorf("err = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("over the user's limit", func(t *testing.T) {
		_, err := f.service.Create(f.user.ID, f.business.ID, decimal.NewFromInt(36))
		var limitErr *LimitExceededError
		if !errors.As(err, &limitErr) {
			t.Fatalf("err = %v, want LimitExceededError", err)
		}
		if !limitErr.Limit.Equal(decimal.NewFromInt(35)) {
			t.Errorf("reported limit = %s, want 35", limitErr.Limit)
		}
	})

	t.Run("over the business cap", func(t *testing.T) {
		// Raise the user's limit high enough to hit the 30% revenue cap
		rich := models.NewUser("rich@example.com", "Max", "Vale", "", "hash")
		rich.MaxSpendLimit = decimal.NewFromInt(3000)
		rich.CurrentTier = 4
		if err := f.users.Create(rich); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		tight := &models.Business{
			ID:                 uuid.New(),
			Name:               "Corner Bakery",
			MonthlyRevenue:     decimal.NewFromInt(100), // cap = 30
			RiskRating:         models.GradeC,
			VerificationStatus: "verified",
			CreatedAt:          time.Now().UTC(),
			UpdatedAt:          time.Now().UTC(),
		}
		if err := storage.NewBusinessRepository(f.db).Create(tight); err != nil {
			t.Fatalf("failed to create business: %v", err)
		}

		_, err := f.service.Create(rich.ID, tight.ID, decimal.NewFromInt(31))
		var capErr *BusinessCapExceededError
		if !errors.As(err, &capErr) {
			t.Fatalf("err = %v, want BusinessCapExceededError", err)
		}
		if !capErr.Max.Equal(decimal.NewFromInt(30)) {
			t.Errorf("reported cap = %s, want 30", capErr.Max)
		}
	})

	t.Run("unverified business", func(t *testing.T) {
		hidden := &models.Business{
			ID:                 uuid.New(),
			Name:               "Shadow LLC",
			MonthlyRevenue:     decimal.NewFromInt(5000),
			VerificationStatus: "pending",
			CreatedAt:          time.Now().UTC(),
			UpdatedAt:          time.Now().UTC(),
		}
		if err := storage.NewBusinessRepository(f.db).Create(hidden); err != nil {
			t.Fatalf("failed to create business: %v", err)
		}

		_, err := f.service.Create(f.user.ID, hidden.ID, decimal.NewFromInt(10))
		if !errors.Is(err, ErrBusinessNotFound) {
			t.Errorf("err = %v, want ErrBusinessNotFound", err)
		}
	})
}

func TestConcurrentCreatesAreSerializedPerUser(t *testing.T) {
	f := newFixture(t)

	// Two concurrent low-risk bets: each must see the other's progression,
	// not overwrite it from a stale read.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.Create(f.user.ID, f.business.ID, decimal.NewFromInt(10)); err != nil {
				t.Errorf("Create() error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Each low-risk bet grows the limit by 10*0.50=5. A lost update would
	// leave the limit at 40 instead of 45.
	stored, err := f.users.GetByID(f.user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if !stored.MaxSpendLimit.Equal(decimal.NewFromInt(45)) {
		t.Errorf("limit after two serialized bets = %s, want 45", stored.MaxSpendLimit)
	}
}
