package models

import "time"

const (
	NotificationMessage       = "message"
	NotificationBooking       = "booking"
	NotificationBookingUpdate = "booking_update"
)

// Notification is write-once except for the is_read flag.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	RelatedID string    `json:"related_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
