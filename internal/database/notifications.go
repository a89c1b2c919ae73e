package database

import (
	"database/sql"

	"brokerconnect/server/internal/models"
)

func (d *Database) CreateNotification(n *models.Notification) error {
	_, err := d.db.Exec(`
		INSERT INTO notifications (id, user_id, type, title, message, related_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID)
	return wrapErr(err)
}

// ListNotifications returns the user's latest 20 notifications, newest first.
func (d *Database) ListNotifications(userID string) ([]*models.Notification, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, type, title, message, is_read, related_id, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 20
	`, userID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		var n models.Notification
		var relatedID sql.NullString
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &relatedID, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		n.RelatedID = relatedID.String
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips is_read for a notification owned by userID. A
// notification belonging to someone else reports ErrNotFound rather than leaking
// its existence.
func (d *Database) MarkNotificationRead(id, userID string) error {
	res, err := d.db.Exec(`
		UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return wrapErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) UnreadNotificationCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0
	`, userID).Scan(&count)
	if err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}
