package storage

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

// PayoutRepository provides read access to payout records. Writes go through
// SettlementRepository so the paired transitions stay atomic.
type PayoutRepository struct {
	db *DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// GetByID retrieves a payout by ID
func (r *PayoutRepository) GetByID(id uuid.UUID) (*models.Payout, error) {
	query := `
		SELECT id, investment_id, user_id, amount, fee_amount, status, processed_at, completed_at, created_at
		FROM payouts WHERE id = ?
	`
	rows, err := r.db.Query(query, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanPayout(rows)
}

// GetByInvestmentID retrieves the payout for an investment, if any
func (r *PayoutRepository) GetByInvestmentID(investmentID uuid.UUID) (*models.Payout, error) {
	query := `
		SELECT id, investment_id, user_id, amount, fee_amount, status, processed_at, completed_at, created_at
		FROM payouts WHERE investment_id = ?
	`
	rows, err := r.db.Query(query, investmentID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanPayout(rows)
}

// HistoryItem is a payout joined with its investment and business
type HistoryItem struct {
	models.Payout
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	BusinessName     string          `json:"business_name"`
}

// HistoryForUser returns the user's payouts, newest first
func (r *PayoutRepository) HistoryForUser(userID uuid.UUID) ([]*HistoryItem, error) {
	query := `
		SELECT p.id, p.investment_id, p.user_id, p.amount, p.fee_amount, p.status,
			p.processed_at, p.completed_at, p.created_at,
			i.amount, b.name
		FROM payouts p
		JOIN investments i ON p.investment_id = i.id
		JOIN businesses b ON i.business_id = b.id
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*HistoryItem
	for rows.Next() {
		var item HistoryItem
		var id, invID, uid, amount, fee, status, invAmount string
		var processedAt, completedAt sql.NullTime

		err := rows.Scan(&id, &invID, &uid, &amount, &fee, &status,
			&processedAt, &completedAt, &item.CreatedAt, &invAmount, &item.BusinessName)
		if err != nil {
			return nil, err
		}

		item.ID, _ = uuid.Parse(id)
		item.InvestmentID, _ = uuid.Parse(invID)
		item.UserID, _ = uuid.Parse(uid)
		item.Status = models.PayoutStatus(status)
		if processedAt.Valid {
			t := processedAt.Time
			item.ProcessedAt = &t
		}
		if completedAt.Valid {
			t := completedAt.Time
			item.CompletedAt = &t
		}
		if item.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if item.FeeAmount, err = decimal.NewFromString(fee); err != nil {
			return nil, err
		}
		if item.InvestmentAmount, err = decimal.NewFromString(invAmount); err != nil {
			return nil, err
		}

		items = append(items, &item)
	}
	return items, rows.Err()
}

// CompletionStats counts completed vs total payouts for a business
type CompletionStats struct {
	Total     int
	Completed int
}

// CompletionStatsFor aggregates payout completion for a business's investments
func (r *PayoutRepository) CompletionStatsFor(businessID uuid.UUID) (*CompletionStats, error) {
	query := `
		SELECT COUNT(*), COUNT(CASE WHEN p.completed_at IS NOT NULL THEN 1 END)
		FROM payouts p
		JOIN investments i ON p.investment_id = i.id
		WHERE i.business_id = ?
	`
	var stats CompletionStats
	err := r.db.QueryRow(query, businessID.String()).Scan(&stats.Total, &stats.Completed)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// AverageReturnRatio computes AVG(payout amount / investment amount) over
// paid payouts for a business. Returns ok=false with no paid payouts.
func (r *PayoutRepository) AverageReturnRatio(businessID uuid.UUID) (decimal.Decimal, bool, error) {
	query := `
		SELECT AVG(CAST(p.amount AS REAL) / CAST(i.amount AS REAL))
		FROM payouts p
		JOIN investments i ON p.investment_id = i.id
		WHERE i.business_id = ? AND p.status = 'paid'
	`
	var ratio sql.NullFloat64
	if err := r.db.QueryRow(query, businessID.String()).Scan(&ratio); err != nil {
		return decimal.Zero, false, err
	}
	if !ratio.Valid {
		return decimal.Zero, false, nil
	}
	return decimal.NewFromFloat(ratio.Float64), true, nil
}
