// Package rating computes the weighted risk grade assigned to each business.
// The grade feeds the investor return multiplier captured at investment time.
package rating

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
	"github.com/adiontis/investment-bridge/internal/storage"
)

// Component weights; they sum to 1.0
var (
	weightRevenueConsistency = decimal.NewFromFloat(0.25)
	weightPayoutHistory      = decimal.NewFromFloat(0.30)
	weightInvestorReturns    = decimal.NewFromFloat(0.25)
	weightReputation         = decimal.NewFromFloat(0.15)
	weightFinancialHealth    = decimal.NewFromFloat(0.05)
)

// defaultComponentScore stands in when a business has no history yet
var defaultComponentScore = decimal.NewFromInt(70)

// Scores holds the five component scores, each on a 0-100 scale
type Scores struct {
	RevenueConsistency decimal.Decimal
	PayoutHistory      decimal.Decimal
	InvestorReturns    decimal.Decimal
	Reputation         decimal.Decimal
	FinancialHealth    decimal.Decimal
}

// Combine produces the weighted total score
func (s Scores) Combine() decimal.Decimal {
	total := s.RevenueConsistency.Mul(weightRevenueConsistency)
	total = total.Add(s.PayoutHistory.Mul(weightPayoutHistory))
	total = total.Add(s.InvestorReturns.Mul(weightInvestorReturns))
	total = total.Add(s.Reputation.Mul(weightReputation))
	return total.Add(s.FinancialHealth.Mul(weightFinancialHealth))
}

// ScoreToGrade maps a 0-100 score to a letter grade
func ScoreToGrade(score decimal.Decimal) models.RiskGrade {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return models.GradeA
	case score.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return models.GradeB
	case score.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return models.GradeC
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return models.GradeD
	default:
		return models.GradeF
	}
}

// Service aggregates history into a grade and persists it
type Service struct {
	businessRepo *storage.BusinessRepository
	payoutRepo   *storage.PayoutRepository
}

// NewService creates a new rating service
func NewService(businessRepo *storage.BusinessRepository, payoutRepo *storage.PayoutRepository) *Service {
	return &Service{
		businessRepo: businessRepo,
		payoutRepo:   payoutRepo,
	}
}

// Rate recomputes and stores a business's risk grade and score
func (s *Service) Rate(businessID uuid.UUID) (models.RiskGrade, decimal.Decimal, error) {
	scores, err := s.collectScores(businessID)
	if err != nil {
		return "", decimal.Zero, err
	}

	total := scores.Combine()
	grade := ScoreToGrade(total)

	if err := s.businessRepo.UpdateRiskRating(businessID, grade, int(total.Round(0).IntPart())); err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to store risk rating: %w", err)
	}

	return grade, total, nil
}

func (s *Service) collectScores(businessID uuid.UUID) (Scores, error) {
	payoutScore, err := s.payoutHistoryScore(businessID)
	if err != nil {
		return Scores{}, err
	}
	returnsScore, err := s.investorReturnsScore(businessID)
	if err != nil {
		return Scores{}, err
	}
	reputationScore, err := s.reputationScore(businessID)
	if err != nil {
		return Scores{}, err
	}

	return Scores{
		// Revenue consistency and financial health would come from bank data
		// integrations; fixed stand-ins until those exist.
		RevenueConsistency: decimal.NewFromInt(85),
		FinancialHealth:    decimal.NewFromInt(90),
		PayoutHistory:      payoutScore,
		InvestorReturns:    returnsScore,
		Reputation:         reputationScore,
	}, nil
}

// payoutHistoryScore is the percentage of this business's payouts completed
func (s *Service) payoutHistoryScore(businessID uuid.UUID) (decimal.Decimal, error) {
	stats, err := s.payoutRepo.CompletionStatsFor(businessID)
	if err != nil {
		return decimal.Zero, err
	}
	if stats.Total == 0 {
		return defaultComponentScore, nil
	}
	return decimal.NewFromInt(int64(stats.Completed)).
		Div(decimal.NewFromInt(int64(stats.Total))).
		Mul(decimal.NewFromInt(100)), nil
}

// investorReturnsScore rewards average paid-out return above principal:
// clamp((avgRatio - 1) * 500 + 50, 0, 100)
func (s *Service) investorReturnsScore(businessID uuid.UUID) (decimal.Decimal, error) {
	ratio, ok, err := s.payoutRepo.AverageReturnRatio(businessID)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return defaultComponentScore, nil
	}

	score := ratio.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(500)).Add(decimal.NewFromInt(50))
	return clamp(score, decimal.Zero, decimal.NewFromInt(100)), nil
}

// reputationScore blends the star-rating average toward the default until
// the business accumulates ten ratings.
func (s *Service) reputationScore(businessID uuid.UUID) (decimal.Decimal, error) {
	summary, err := s.businessRepo.RatingSummaryFor(businessID)
	if err != nil {
		return decimal.Zero, err
	}
	if summary.Count == 0 {
		return defaultComponentScore, nil
	}

	base := summary.Average.Div(decimal.NewFromInt(5)).Mul(decimal.NewFromInt(100))
	confidence := decimal.NewFromInt(int64(summary.Count)).Div(decimal.NewFromInt(10))
	if confidence.GreaterThan(decimal.NewFromInt(1)) {
		confidence = decimal.NewFromInt(1)
	}

	blended := base.Mul(confidence).
		Add(decimal.NewFromInt(1).Sub(confidence).Mul(defaultComponentScore))
	return blended, nil
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
