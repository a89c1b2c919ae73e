package database

import (
	"database/sql"

	"brokerconnect/server/internal/models"
)

func (d *Database) CreateBooking(b *models.Booking) error {
	_, err := d.db.Exec(`
		INSERT INTO bookings (id, client_id, broker_id, property_id, visit_date, visit_time,
			client_name, client_phone, message, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.ClientID, b.BrokerID, b.PropertyID, b.VisitDate, b.VisitTime,
		b.ClientName, b.ClientPhone, b.Message, b.Status)
	return wrapErr(err)
}

func (d *Database) GetBooking(id string) (*models.Booking, error) {
	var b models.Booking
	var message sql.NullString

	err := d.db.QueryRow(`
		SELECT id, client_id, broker_id, property_id, visit_date, visit_time,
			client_name, client_phone, message, status, created_at
		FROM bookings
		WHERE id = ?
	`, id).Scan(
		&b.ID, &b.ClientID, &b.BrokerID, &b.PropertyID, &b.VisitDate, &b.VisitTime,
		&b.ClientName, &b.ClientPhone, &message, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(err)
	}
	b.Message = message.String
	return &b, nil
}

func (d *Database) UpdateBookingStatus(id, status string) error {
	res, err := d.db.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
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

// UpdateBookingProposal overwrites the proposed visit slot and note in place.
// Prior proposals are not retained.
func (d *Database) UpdateBookingProposal(id, status, visitDate, visitTime, message string) error {
	res, err := d.db.Exec(`
		UPDATE bookings SET visit_date = ?, visit_time = ?, status = ?, message = ?
		WHERE id = ?
	`, visitDate, visitTime, status, message, id)
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

func scanBookingDetail(rows *sql.Rows, withBroker bool) (*models.BookingDetail, error) {
	var bd models.BookingDetail
	var message, area sql.NullString

	dest := []interface{}{
		&bd.ID, &bd.ClientID, &bd.BrokerID, &bd.PropertyID, &bd.VisitDate, &bd.VisitTime,
		&bd.ClientName, &bd.ClientPhone, &message, &bd.Status, &bd.CreatedAt,
		&bd.PropertyTitle, &bd.District, &area,
	}
	if withBroker {
		dest = append(dest, &bd.BrokerName, &bd.BrokerPhone)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	bd.Message = message.String
	bd.Area = area.String
	return &bd, nil
}

// ListClientBookings returns a client's bookings with property and broker display
// fields, most recent visit first.
func (d *Database) ListClientBookings(clientID string) ([]*models.BookingDetail, error) {
	rows, err := d.db.Query(`
		SELECT b.id, b.client_id, b.broker_id, b.property_id, b.visit_date, b.visit_time,
			b.client_name, b.client_phone, b.message, b.status, b.created_at,
			p.title, p.district, p.area, u.name, u.phone
		FROM bookings b
		JOIN properties p ON b.property_id = p.id
		JOIN users u ON b.broker_id = u.id
		WHERE b.client_id = ?
		ORDER BY b.visit_date DESC, b.visit_time DESC
	`, clientID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	bookings := []*models.BookingDetail{}
	for rows.Next() {
		bd, err := scanBookingDetail(rows, true)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, bd)
	}
	return bookings, rows.Err()
}

func (d *Database) ListBrokerBookings(brokerID string) ([]*models.BookingDetail, error) {
	rows, err := d.db.Query(`
		SELECT b.id, b.client_id, b.broker_id, b.property_id, b.visit_date, b.visit_time,
			b.client_name, b.client_phone, b.message, b.status, b.created_at,
			p.title, p.district, p.area
		FROM bookings b
		JOIN properties p ON b.property_id = p.id
		WHERE b.broker_id = ?
		ORDER BY b.visit_date DESC, b.visit_time DESC
	`, brokerID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	bookings := []*models.BookingDetail{}
	for rows.Next() {
		bd, err := scanBookingDetail(rows, false)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, bd)
	}
	return bookings, rows.Err()
}
