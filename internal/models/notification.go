package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes in-app notifications
type NotificationType string

const (
	NotificationInvestment NotificationType = "investment"
	NotificationPayout     NotificationType = "payout"
	NotificationCooldown   NotificationType = "cooldown"
	NotificationKYC        NotificationType = "kyc"
	NotificationReminder   NotificationType = "reminder"
)

// Notification is an in-app message stored for later display
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification creates an unread notification
func NewNotification(userID uuid.UUID, typ NotificationType, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
