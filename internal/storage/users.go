package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adiontis/investment-bridge/internal/models"
)

// UserRepository provides user data access
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone,
			kyc_status, max_spend_limit, current_tier, cooldown_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		string(user.KYCStatus),
		user.MaxSpendLimit.String(),
		user.CurrentTier,
		user.CooldownUntil,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

const userColumns = `id, email, password_hash, first_name, last_name, phone,
	kyc_status, max_spend_limit, current_tier, cooldown_until, created_at, updated_at`

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRow(query, id.String()))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRow(query, email))
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count)
	return count > 0, err
}

// Update modifies an existing user's profile fields
func (r *UserRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users SET email = ?, first_name = ?, last_name = ?, phone = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.UpdatedAt,
		user.ID.String(),
	)
	return err
}

// UpdateKYCStatus sets the user's verification status
func (r *UserRepository) UpdateKYCStatus(id uuid.UUID, status models.KYCStatus) error {
	_, err := r.db.Exec(
		`UPDATE users SET kyc_status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id.String(),
	)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var id, limit string
	var phone sql.NullString
	var kyc string
	var cooldown sql.NullTime

	err := row.Scan(
		&id,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&phone,
		&kyc,
		&limit,
		&user.CurrentTier,
		&cooldown,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.ID, _ = uuid.Parse(id)
	user.KYCStatus = models.KYCStatus(kyc)
	if phone.Valid {
		user.Phone = phone.String
	}
	if cooldown.Valid {
		t := cooldown.Time
		user.CooldownUntil = &t
	}
	user.MaxSpendLimit, err = decimal.NewFromString(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse spend limit: %w", err)
	}

	return &user, nil
}

// SessionRepository provides session data access
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		session.ID.String(),
		session.UserID.String(),
		session.Token,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return err
}

// DeleteByUserID removes all sessions for a user
func (r *SessionRepository) DeleteByUserID(userID uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID.String())
	return err
}

// DeleteExpired removes all expired sessions
func (r *SessionRepository) DeleteExpired() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	return err
}
