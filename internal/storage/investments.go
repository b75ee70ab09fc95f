package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

// InvestmentRepository provides investment data access
type InvestmentRepository struct {
	db *DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

const investmentColumns = `id, user_id, business_id, amount, fee_amount, status,
	risk_percentage, growth_increase, expected_return, payout_date, created_at, updated_at`

// CreateWithProgression inserts the investment and applies the user's new
// limit, tier and cooldown in a single transaction. The two writes together
// are the read-compute-write unit of an investment event; committing them
// atomically prevents a lost update against a concurrent request.
func (r *InvestmentRepository) CreateWithProgression(inv *models.Investment, user *models.User) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO investments (`+investmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID.String(),
		inv.UserID.String(),
		inv.BusinessID.String(),
		inv.Amount.String(),
		inv.FeeAmount.String(),
		string(inv.Status),
		inv.RiskPercentage.String(),
		inv.GrowthIncrease.String(),
		inv.ExpectedReturn.String(),
		inv.PayoutDate,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE users SET max_spend_limit = ?, current_tier = ?, cooldown_until = ?, updated_at = ?
		WHERE id = ?`,
		user.MaxSpendLimit.String(),
		user.CurrentTier,
		user.CooldownUntil,
		time.Now().UTC(),
		user.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update user progression: %w", err)
	}

	return tx.Commit()
}

// GetByID retrieves an investment by ID
func (r *InvestmentRepository) GetByID(id uuid.UUID) (*models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = ?`
	rows, err := r.db.Query(query, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanInvestment(rows)
}

// ExistsForUserAndBusiness reports whether the user ever invested in the business
func (r *InvestmentRepository) ExistsForUserAndBusiness(userID, businessID uuid.UUID) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM investments WHERE user_id = ? AND business_id = ?`,
		userID.String(), businessID.String(),
	).Scan(&count)
	return count > 0, err
}

// PortfolioItem is an investment joined with its business and payout state
type PortfolioItem struct {
	models.Investment
	BusinessName string               `json:"business_name"`
	RiskRating   models.RiskGrade     `json:"risk_rating"`
	PayoutStatus *models.PayoutStatus `json:"payout_status,omitempty"`
	PayoutAmount *decimal.Decimal     `json:"payout_amount,omitempty"`
}

// PortfolioForUser returns the user's investments, newest first, with
// business names and payout state joined in.
func (r *InvestmentRepository) PortfolioForUser(userID uuid.UUID) ([]*PortfolioItem, error) {
	query := `
		SELECT i.id, i.user_id, i.business_id, i.amount, i.fee_amount, i.status,
			i.risk_percentage, i.growth_increase, i.expected_return, i.payout_date,
			i.created_at, i.updated_at,
			b.name, b.risk_rating, p.status, p.amount
		FROM investments i
		JOIN businesses b ON i.business_id = b.id
		LEFT JOIN payouts p ON i.id = p.investment_id
		WHERE i.user_id = ?
		ORDER BY i.created_at DESC
	`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*PortfolioItem
	for rows.Next() {
		var item PortfolioItem
		var id, uid, bizID, amount, fee, status, riskPct, growth, expected, rating string
		var payoutStatus, payoutAmount sql.NullString

		err := rows.Scan(
			&id, &uid, &bizID, &amount, &fee, &status,
			&riskPct, &growth, &expected, &item.PayoutDate,
			&item.CreatedAt, &item.UpdatedAt,
			&item.BusinessName, &rating, &payoutStatus, &payoutAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}

		item.ID, _ = uuid.Parse(id)
		item.UserID, _ = uuid.Parse(uid)
		item.BusinessID, _ = uuid.Parse(bizID)
		item.Status = models.InvestmentStatus(status)
		item.RiskRating = models.RiskGrade(rating)
		if item.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if item.FeeAmount, err = decimal.NewFromString(fee); err != nil {
			return nil, err
		}
		if item.RiskPercentage, err = decimal.NewFromString(riskPct); err != nil {
			return nil, err
		}
		if item.GrowthIncrease, err = decimal.NewFromString(growth); err != nil {
			return nil, err
		}
		if item.ExpectedReturn, err = decimal.NewFromString(expected); err != nil {
			return nil, err
		}
		if payoutStatus.Valid {
			s := models.PayoutStatus(payoutStatus.String)
			item.PayoutStatus = &s
		}
		if payoutAmount.Valid {
			a, err := decimal.NewFromString(payoutAmount.String)
			if err != nil {
				return nil, err
			}
			item.PayoutAmount = &a
		}

		items = append(items, &item)
	}
	return items, rows.Err()
}

// UserStats summarizes a user's investment activity for the dashboard
type UserStats struct {
	TotalInvestments int             `json:"total_investments"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	PendingCount     int             `json:"pending_count"`
	CompletedCount   int             `json:"completed_count"`
}

// StatsForUser aggregates investment counts and totals for a user
func (r *InvestmentRepository) StatsForUser(userID uuid.UUID) (*UserStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(CAST(amount AS REAL)), 0),
			COUNT(CASE WHEN status = 'pending_escrow' THEN 1 END),
			COUNT(CASE WHEN status = 'paid' THEN 1 END)
		FROM investments
		WHERE user_id = ?
	`
	var stats UserStats
	var invested float64
	err := r.db.QueryRow(query, userID.String()).Scan(
		&stats.TotalInvestments,
		&invested,
		&stats.PendingCount,
		&stats.CompletedCount,
	)
	if err != nil {
		return nil, err
	}
	stats.TotalInvested = decimal.NewFromFloat(invested)
	return &stats, nil
}

// UpcomingForUser lists the user's escrowed investments payable within the window
func (r *InvestmentRepository) UpcomingForUser(userID uuid.UUID, until time.Time) ([]*models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments
		WHERE user_id = ? AND status = 'pending_escrow' AND payout_date <= ?
		ORDER BY payout_date ASC`
	rows, err := r.db.Query(query, userID.String(), until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []*models.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func scanInvestment(rows *sql.Rows) (*models.Investment, error) {
	var inv models.Investment
	var id, userID, businessID, amount, fee, status, riskPct, growth, expected string

	err := rows.Scan(
		&id, &userID, &businessID, &amount, &fee, &status,
		&riskPct, &growth, &expected, &inv.PayoutDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan investment: %w", err)
	}

	inv.ID, _ = uuid.Parse(id)
	inv.UserID, _ = uuid.Parse(userID)
	inv.BusinessID, _ = uuid.Parse(businessID)
	inv.Status = models.InvestmentStatus(status)
	if inv.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if inv.FeeAmount, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}
	if inv.RiskPercentage, err = decimal.NewFromString(riskPct); err != nil {
		return nil, err
	}
	if inv.GrowthIncrease, err = decimal.NewFromString(growth); err != nil {
		return nil, err
	}
	if inv.ExpectedReturn, err = decimal.NewFromString(expected); err != nil {
		return nil, err
	}

	return &inv, nil
}
