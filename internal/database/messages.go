package database

import (
	"database/sql"

	"brokerconnect/server/internal/models"
)

func (d *Database) CreateMessage(m *models.Message) error {
	var propertyID interface{}
	if m.PropertyID != "" {
		propertyID = m.PropertyID
	}
	_, err := d.db.Exec(`
		INSERT INTO messages (id, sender_id, receiver_id, property_id, message)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.SenderID, m.ReceiverID, propertyID, m.Message)
	return wrapErr(err)
}

func (d *Database) UnreadMessageCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = 0
	`, userID).Scan(&count)
	if err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}

// ListConversations returns one row per (counterparty, property) pair the user has
// exchanged messages on, most recently active first.
func (d *Database) ListConversations(userID string) ([]*models.Conversation, error) {
	rows, err := d.db.Query(`
		SELECT
			CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END AS other_user_id,
			u.name,
			COALESCE(p.id, ''), COALESCE(p.title, ''),
			MAX(m.created_at) AS last_message_time,
			(SELECT m2.message FROM messages m2
				WHERE (m2.sender_id = ? AND m2.receiver_id =
						CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END)
				   OR (m2.receiver_id = ? AND m2.sender_id =
						CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END)
				ORDER BY m2.created_at DESC LIMIT 1)
		FROM messages m
		JOIN users u ON u.id = CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END
		LEFT JOIN properties p ON m.property_id = p.id
		WHERE m.sender_id = ? OR m.receiver_id = ?
		GROUP BY other_user_id, p.id
		ORDER BY last_message_time DESC
	`, userID, userID, userID, userID, userID, userID, userID, userID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	conversations := []*models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		var lastTime string
		var lastMessage sql.NullString
		err := rows.Scan(&c.OtherUserID, &c.OtherUserName, &c.PropertyID,
			&c.PropertyTitle, &lastTime, &lastMessage)
		if err != nil {
			return nil, err
		}
		c.LastMessageTime = parseTimestamp(lastTime)
		c.LastMessage = lastMessage.String
		conversations = append(conversations, &c)
	}
	return conversations, rows.Err()
}

// ListThread returns the full exchange between two users, oldest first, optionally
// scoped to one property.
func (d *Database) ListThread(userID, otherUserID, propertyID string) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, COALESCE(m.property_id, ''),
			m.message, m.is_read, m.created_at, u.name
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE ((m.sender_id = ? AND m.receiver_id = ?)
			OR (m.sender_id = ? AND m.receiver_id = ?))
	`
	args := []interface{}{userID, otherUserID, otherUserID, userID}
	if propertyID != "" {
		query += " AND m.property_id = ?"
		args = append(args, propertyID)
	}
	query += " ORDER BY m.created_at ASC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.PropertyID,
			&m.Message, &m.IsRead, &m.CreatedAt, &m.SenderName)
		if err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// MarkThreadRead marks everything the counterparty sent to the user as read.
func (d *Database) MarkThreadRead(userID, otherUserID, propertyID string) error {
	query := `
		UPDATE messages SET is_read = 1
		WHERE sender_id = ? AND receiver_id = ? AND is_read = 0
	`
	args := []interface{}{otherUserID, userID}
	if propertyID != "" {
		query += " AND property_id = ?"
		args = append(args, propertyID)
	}
	_, err := d.db.Exec(query, args...)
	return wrapErr(err)
}

// ListPropertyChats summarises, for a broker's property, each client thread with
// its unread count.
func (d *Database) ListPropertyChats(propertyID, brokerID string) ([]*models.PropertyChat, error) {
	rows, err := d.db.Query(`
		SELECT
			u.id, u.name,
			MAX(m.created_at) AS last_message_time,
			(SELECT m2.message FROM messages m2
				WHERE m2.property_id = ? AND m2.sender_id = u.id
				ORDER BY m2.created_at DESC LIMIT 1),
			COUNT(CASE WHEN m.is_read = 0 AND m.sender_id = u.id THEN 1 END)
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.property_id = ? AND m.receiver_id = ?
		GROUP BY u.id
		ORDER BY last_message_time DESC
	`, propertyID, propertyID, brokerID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	chats := []*models.PropertyChat{}
	for rows.Next() {
		var c models.PropertyChat
		var lastTime string
		var lastMessage sql.NullString
		err := rows.Scan(&c.ClientID, &c.ClientName, &lastTime, &lastMessage, &c.UnreadCount)
		if err != nil {
			return nil, err
		}
		c.LastMessageTime = parseTimestamp(lastTime)
		c.LastMessage = lastMessage.String
		chats = append(chats, &c)
	}
	return chats, rows.Err()
}
