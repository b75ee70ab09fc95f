package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/adiontis/investment-bridge/internal/models"
)

// NotificationRepository provides notification data access
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		n.ID.String(),
		n.UserID.String(),
		string(n.Type),
		n.Title,
		n.Message,
		n.CreatedAt,
	)
	return err
}

// ListByUser returns the user's notifications, newest first
func (r *NotificationRepository) ListByUser(userID uuid.UUID, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, read_at, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		var id, uid, typ string
		var readAt sql.NullTime

		if err := rows.Scan(&id, &uid, &typ, &n.Title, &n.Message, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}

		n.ID, _ = uuid.Parse(id)
		n.UserID, _ = uuid.Parse(uid)
		n.Type = models.NotificationType(typ)
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead stamps a notification as read
func (r *NotificationRepository) MarkRead(id uuid.UUID) error {
	_, err := r.db.Exec(
		`UPDATE notifications SET read_at = ? WHERE id = ? AND read_at IS NULL`,
		time.Now().UTC(), id.String(),
	)
	return err
}
