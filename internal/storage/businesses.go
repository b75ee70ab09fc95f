package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

// BusinessRepository provides business data access
type BusinessRepository struct {
	db *DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Create inserts a new business
func (r *BusinessRepository) Create(b *models.Business) error {
	var ownerID interface{}
	if b.OwnerID != nil {
		ownerID = b.OwnerID.String()
	}
	query := `
		INSERT INTO businesses (id, name, description, owner_id, llc_verified, bank_verified,
			monthly_revenue, risk_rating, risk_score, video_url, verification_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		b.ID.String(),
		b.Name,
		b.Description,
		ownerID,
		b.LLCVerified,
		b.BankVerified,
		b.MonthlyRevenue.String(),
		string(b.RiskRating),
		b.RiskScore,
		b.VideoURL,
		b.VerificationStatus,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

const businessColumns = `id, name, description, owner_id, llc_verified, bank_verified,
	monthly_revenue, risk_rating, risk_score, video_url, verification_status, created_at, updated_at`

// GetByID retrieves a business by ID
func (r *BusinessRepository) GetByID(id uuid.UUID) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = ?`
	rows, err := r.db.Query(query, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanBusiness(rows)
}

// ListVerified returns all businesses open for investment, best-rated first
func (r *BusinessRepository) ListVerified() ([]*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses
		WHERE verification_status = 'verified'
		ORDER BY risk_score DESC, monthly_revenue DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []*models.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

// UpdateRiskRating persists a freshly computed grade and score
func (r *BusinessRepository) UpdateRiskRating(id uuid.UUID, grade models.RiskGrade, score int) error {
	_, err := r.db.Exec(
		`UPDATE businesses SET risk_rating = ?, risk_score = ?, updated_at = ? WHERE id = ?`,
		string(grade), score, time.Now().UTC(), id.String(),
	)
	return err
}

func scanBusiness(rows *sql.Rows) (*models.Business, error) {
	var b models.Business
	var id, revenue, rating string
	var description, videoURL, ownerID sql.NullString

	err := rows.Scan(
		&id,
		&b.Name,
		&description,
		&ownerID,
		&b.LLCVerified,
		&b.BankVerified,
		&revenue,
		&rating,
		&b.RiskScore,
		&videoURL,
		&b.VerificationStatus,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan business: %w", err)
	}

	b.ID, _ = uuid.Parse(id)
	b.RiskRating = models.RiskGrade(rating)
	if description.Valid {
		b.Description = description.String
	}
	if videoURL.Valid {
		b.VideoURL = videoURL.String
	}
	if ownerID.Valid {
		owner, err := uuid.Parse(ownerID.String)
		if err == nil {
			b.OwnerID = &owner
		}
	}
	b.MonthlyRevenue, err = decimal.NewFromString(revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to parse monthly revenue: %w", err)
	}

	return &b, nil
}

// RatingSummary aggregates star ratings for a business
type RatingSummary struct {
	Average decimal.Decimal `json:"avg_rating"`
	Count   int             `json:"rating_count"`
}

// RatingSummaryFor returns the average stars and count for a business
func (r *BusinessRepository) RatingSummaryFor(id uuid.UUID) (*RatingSummary, error) {
	var avg sql.NullFloat64
	var count int
	err := r.db.QueryRow(
		`SELECT AVG(rating), COUNT(*) FROM business_ratings WHERE business_id = ?`,
		id.String(),
	).Scan(&avg, &count)
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{Count: count}
	if avg.Valid {
		summary.Average = decimal.NewFromFloat(avg.Float64).Round(1)
	}
	return summary, nil
}

// RatingRepository provides business rating data access
type RatingRepository struct {
	db *DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts a rating or replaces the user's previous one
func (r *RatingRepository) Upsert(rating *models.Rating) error {
	query := `
		INSERT INTO business_ratings (id, business_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (business_id, user_id) DO UPDATE SET rating = excluded.rating, comment = excluded.comment
	`
	_, err := r.db.Exec(query,
		rating.ID.String(),
		rating.BusinessID.String(),
		rating.UserID.String(),
		rating.Stars,
		rating.Comment,
		rating.CreatedAt,
	)
	return err
}

// ListRecent returns the latest ratings for a business with reviewer names
func (r *RatingRepository) ListRecent(businessID uuid.UUID, limit int) ([]*RatedReview, error) {
	query := `
		SELECT br.id, br.business_id, br.user_id, br.rating, br.comment, br.created_at,
			u.first_name, u.last_name
		FROM business_ratings br
		JOIN users u ON br.user_id = u.id
		WHERE br.business_id = ?
		ORDER BY br.created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, businessID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*RatedReview
	for rows.Next() {
		var rv RatedReview
		var id, bizID, userID string
		var comment sql.NullString
		if err := rows.Scan(&id, &bizID, &userID, &rv.Stars, &comment, &rv.CreatedAt, &rv.FirstName, &rv.LastName); err != nil {
			return nil, err
		}
		rv.ID, _ = uuid.Parse(id)
		rv.BusinessID, _ = uuid.Parse(bizID)
		rv.UserID, _ = uuid.Parse(userID)
		if comment.Valid {
			rv.Comment = comment.String
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

// RatedReview is a rating joined with the reviewer's name
type RatedReview struct {
	models.Rating
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
