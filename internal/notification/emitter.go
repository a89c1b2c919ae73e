package notification

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"brokerconnect/server/internal/models"
)

// Store is the persistence capability for notification records.
type Store interface {
	CreateNotification(n *models.Notification) error
	ListNotifications(userID string) ([]*models.Notification, error)
	MarkNotificationRead(id, userID string) error
	UnreadNotificationCount(userID string) (int, error)
}

// Emitter persists user-facing alerts derived from domain events. There is no
// delivery beyond persistence; consumers poll the read side.
type Emitter struct {
	store  Store
	logger *logrus.Logger
}

func NewEmitter(store Store, logger *logrus.Logger) *Emitter {
	return &Emitter{
		store:  store,
		logger: logger,
	}
}

// Emit appends one notification record. Failures are logged and swallowed so a
// state transition that already happened is never rolled back or failed over an
// advisory write.
func (e *Emitter) Emit(userID, notifType, title, message, relatedID string) {
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}
	if err := e.store.CreateNotification(n); err != nil {
		e.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"type":    notifType,
		}).Error("Failed to create notification")
	}
}

// List returns the user's latest 20 notifications, newest first.
func (e *Emitter) List(userID string) ([]*models.Notification, error) {
	return e.store.ListNotifications(userID)
}

// MarkRead flips the read flag on one of the user's own notifications.
func (e *Emitter) MarkRead(id, userID string) error {
	return e.store.MarkNotificationRead(id, userID)
}

func (e *Emitter) UnreadCount(userID string) (int, error) {
	return e.store.UnreadNotificationCount(userID)
}
