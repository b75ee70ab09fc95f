package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

// SettlementRepository owns the paired investment/payout transitions of the
// settlement pipeline. Every transition runs in one transaction with a status
// guard, so re-running a step that already happened is a no-op rather than a
// double payment.
type SettlementRepository struct {
	db *DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// EligibleInvestments returns escrowed investments whose payout date has
// arrived and whose owner has completed verification. Unverified owners keep
// their investments in escrow; they are re-evaluated on every sweep.
func (r *SettlementRepository) EligibleInvestments(ctx context.Context, now time.Time) ([]*models.Investment, error) {
	query := `
		SELECT i.id, i.user_id, i.business_id, i.amount, i.fee_amount, i.status,
			i.risk_percentage, i.growth_increase, i.expected_return, i.payout_date,
			i.created_at, i.updated_at
		FROM investments i
		JOIN users u ON i.user_id = u.id
		WHERE i.status = 'pending_escrow'
		AND i.payout_date <= ?
		AND u.kyc_status = 'verified'
	`
	rows, err := r.db.QueryContext(ctx, query, now)
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

// Release creates the payout and moves the investment to released in one
// transaction. Returns false without writing anything when the investment is
// no longer in escrow, which makes a repeated sweep unable to create a
// second payout.
func (r *SettlementRepository) Release(ctx context.Context, inv *models.Investment, payout *models.Payout) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM investments WHERE id = ?`, inv.ID.String(),
	).Scan(&status)
	if err != nil {
		return false, fmt.Errorf("failed to load investment status: %w", err)
	}
	if models.InvestmentStatus(status) != models.InvestmentPendingEscrow {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payouts (id, investment_id, user_id, amount, fee_amount, status, processed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payout.ID.String(),
		payout.InvestmentID.String(),
		payout.UserID.String(),
		payout.Amount.String(),
		payout.FeeAmount.String(),
		string(payout.Status),
		payout.ProcessedAt,
		payout.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create payout: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE investments SET status = ?, updated_at = ? WHERE id = ?`,
		string(models.InvestmentReleased), time.Now().UTC(), inv.ID.String(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to release investment: %w", err)
	}

	return true, tx.Commit()
}

// Complete moves the payout to paid and its investment to paid in one
// transaction, after the external transfer confirmed. Returns false without
// writing when the payout already completed, so the profit fee is never
// applied twice.
func (r *SettlementRepository) Complete(ctx context.Context, payoutID uuid.UUID, now time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var status, investmentID string
	err = tx.QueryRowContext(ctx,
		`SELECT status, investment_id FROM payouts WHERE id = ?`, payoutID.String(),
	).Scan(&status, &investmentID)
	if err != nil {
		return false, fmt.Errorf("failed to load payout: %w", err)
	}
	if models.PayoutStatus(status) != models.PayoutProcessing {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE payouts SET status = ?, completed_at = ? WHERE id = ?`,
		string(models.PayoutPaid), now, payoutID.String(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete payout: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE investments SET status = ?, updated_at = ? WHERE id = ?`,
		string(models.InvestmentPaid), now, investmentID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark investment paid: %w", err)
	}

	return true, tx.Commit()
}

// ProcessingPayouts returns payouts whose transfer never confirmed, left in
// the released/processing holding pattern by an earlier sweep.
func (r *SettlementRepository) ProcessingPayouts(ctx context.Context) ([]*models.Payout, error) {
	query := `
		SELECT id, investment_id, user_id, amount, fee_amount, status, processed_at, completed_at, created_at
		FROM payouts
		WHERE status = 'processing'
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*models.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

func scanPayout(rows *sql.Rows) (*models.Payout, error) {
	var p models.Payout
	var id, invID, userID, amount, fee, status string
	var processedAt, completedAt sql.NullTime

	err := rows.Scan(&id, &invID, &userID, &amount, &fee, &status, &processedAt, &completedAt, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payout: %w", err)
	}

	p.ID, _ = uuid.Parse(id)
	p.InvestmentID, _ = uuid.Parse(invID)
	p.UserID, _ = uuid.Parse(userID)
	p.Status = models.PayoutStatus(status)
	if processedAt.Valid {
		t := processedAt.Time
		p.ProcessedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	if p.FeeAmount, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}

	return &p, nil
}
