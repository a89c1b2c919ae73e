package database

import (
	"database/sql"

	"brokerconnect/server/internal/models"
)

// CreateReview inserts a review row. A second review for the same booking trips
// the unique constraint and comes back as ErrDuplicate; the first row is never
// touched.
func (d *Database) CreateReview(r *models.Review) error {
	_, err := d.db.Exec(`
		INSERT INTO reviews (
			id, booking_id, client_id, broker_id, property_id,
			broker_rating, broker_comment, property_rating, property_comment, property_taken
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.BookingID, r.ClientID, r.BrokerID, r.PropertyID,
		r.BrokerRating, r.BrokerComment, r.PropertyRating, r.PropertyComment, r.PropertyTaken)
	return wrapErr(err)
}

// GetReviewForBooking returns the review a client left on a booking, or
// ErrNotFound.
func (d *Database) GetReviewForBooking(bookingID, clientID string) (*models.Review, error) {
	var r models.Review
	var brokerComment, propertyComment sql.NullString

	err := d.db.QueryRow(`
		SELECT id, booking_id, client_id, broker_id, property_id,
			broker_rating, broker_comment, property_rating, property_comment,
			property_taken, created_at
		FROM reviews
		WHERE booking_id = ? AND client_id = ?
	`, bookingID, clientID).Scan(
		&r.ID, &r.BookingID, &r.ClientID, &r.BrokerID, &r.PropertyID,
		&r.BrokerRating, &brokerComment, &r.PropertyRating, &propertyComment,
		&r.PropertyTaken, &r.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(err)
	}
	r.BrokerComment = brokerComment.String
	r.PropertyComment = propertyComment.String
	return &r, nil
}

// RefreshBrokerAggregates recomputes the broker profile's rating and review count
// from the review rows.
func (d *Database) RefreshBrokerAggregates(brokerID string) error {
	_, err := d.db.Exec(`
		UPDATE brokers SET
			rating = COALESCE((SELECT AVG(broker_rating) FROM reviews WHERE broker_id = ?), 0),
			total_reviews = (SELECT COUNT(*) FROM reviews WHERE broker_id = ?)
		WHERE user_id = ?
	`, brokerID, brokerID, brokerID)
	return wrapErr(err)
}
