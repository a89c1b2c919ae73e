package database

import (
	"database/sql"
	"encoding/json"
	"math"

	"brokerconnect/server/internal/models"
)

func marshalList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return []string{}
	}
	return values
}

func roundRating(v float64) *float64 {
	rounded := math.Round(v*10) / 10
	return &rounded
}

func (d *Database) CreateProperty(p *models.Property) error {
	_, err := d.db.Exec(`
		INSERT INTO properties (
			id, title, description, category, price, currency, district, area, address,
			size, rooms, bathrooms, amenities, images, broker_id, status, is_verified
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'available', 1)
	`, p.ID, p.Title, p.Description, p.Category, p.Price, p.Currency,
		p.Location.District, p.Location.Area, p.Location.Address,
		p.Features.Size, p.Features.Rooms, p.Features.Bathrooms,
		marshalList(p.Features.Amenities), marshalList(p.Images), p.BrokerID)
	return wrapErr(err)
}

// ListProperties returns available properties with broker contact fields and two
// independent review aggregates, one keyed by property and one by broker. When the
// filter carries a client id, properties that client marked as taken are excluded.
func (d *Database) ListProperties(filter models.PropertyFilter) ([]*models.Property, error) {
	query := `
		SELECT
			p.id, p.title, p.description, p.category, p.price, p.currency,
			p.district, p.area, p.address, p.latitude, p.longitude,
			p.size, p.rooms, p.bathrooms, p.amenities, p.images, p.videos,
			p.status, p.broker_id, p.is_verified, p.views, p.created_at, p.updated_at,
			u.name, u.phone, u.email,
			AVG(r.property_rating), COUNT(r.property_rating),
			AVG(br.broker_rating), COUNT(br.broker_rating)
		FROM properties p
		JOIN users u ON p.broker_id = u.id
		LEFT JOIN reviews r ON p.id = r.property_id
		LEFT JOIN reviews br ON u.id = br.broker_id
		WHERE p.status = 'available'
	`
	var args []interface{}

	if filter.ClientID != "" {
		query += ` AND p.id NOT IN (
			SELECT property_id FROM reviews WHERE client_id = ? AND property_taken = 1
		)`
		args = append(args, filter.ClientID)
	}
	if filter.Category != "" {
		query += " AND p.category = ?"
		args = append(args, filter.Category)
	}
	if filter.District != "" {
		query += " AND p.district = ?"
		args = append(args, filter.District)
	}
	if filter.MinPrice != "" {
		query += " AND p.price >= ?"
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query += " AND p.price <= ?"
		args = append(args, filter.MaxPrice)
	}
	if filter.Rooms != "" {
		query += " AND p.rooms >= ?"
		args = append(args, filter.Rooms)
	}

	query += " GROUP BY p.id ORDER BY p.created_at DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		var p models.Property
		var description, area, amenities, images, videos sql.NullString
		var latitude, longitude sql.NullFloat64
		var rooms, bathrooms sql.NullInt64
		var brokerName, brokerPhone, brokerEmail string
		var propertyRating, brokerRating sql.NullFloat64
		var propertyReviews, brokerReviews int

		err := rows.Scan(
			&p.ID, &p.Title, &description, &p.Category, &p.Price, &p.Currency,
			&p.Location.District, &area, &p.Location.Address, &latitude, &longitude,
			&p.Features.Size, &rooms, &bathrooms, &amenities, &images, &videos,
			&p.Status, &p.BrokerID, &p.IsVerified, &p.Views, &p.CreatedAt, &p.UpdatedAt,
			&brokerName, &brokerPhone, &brokerEmail,
			&propertyRating, &propertyReviews,
			&brokerRating, &brokerReviews,
		)
		if err != nil {
			return nil, err
		}

		p.Description = description.String
		p.Location.Area = area.String
		if latitude.Valid || longitude.Valid {
			p.Location.Coordinates = &models.Coordinates{
				Lat: latitude.Float64,
				Lng: longitude.Float64,
			}
		}
		if rooms.Valid {
			v := int(rooms.Int64)
			p.Features.Rooms = &v
		}
		if bathrooms.Valid {
			v := int(bathrooms.Int64)
			p.Features.Bathrooms = &v
		}
		p.Features.Amenities = unmarshalList(amenities)
		p.Images = unmarshalList(images)
		p.Videos = unmarshalList(videos)

		broker := &models.BrokerSummary{
			Name:        brokerName,
			Phone:       brokerPhone,
			Email:       brokerEmail,
			ReviewCount: brokerReviews,
		}
		if brokerRating.Valid {
			broker.Rating = roundRating(brokerRating.Float64)
		}
		p.Broker = broker

		if propertyRating.Valid {
			p.Rating = roundRating(propertyRating.Float64)
		}
		p.ReviewCount = propertyReviews

		properties = append(properties, &p)
	}
	return properties, rows.Err()
}

// GetProperty returns one property joined with the broker's stored profile
// aggregates.
func (d *Database) GetProperty(id string) (*models.Property, error) {
	row := d.db.QueryRow(`
		SELECT
			p.id, p.title, p.description, p.category, p.price, p.currency,
			p.district, p.area, p.address, p.latitude, p.longitude,
			p.size, p.rooms, p.bathrooms, p.amenities, p.images, p.videos,
			p.status, p.broker_id, p.is_verified, p.views, p.created_at, p.updated_at,
			u.name, u.phone, u.email,
			b.rating, b.total_reviews
		FROM properties p
		JOIN users u ON p.broker_id = u.id
		LEFT JOIN brokers b ON u.id = b.user_id
		WHERE p.id = ?
	`, id)

	var p models.Property
	var description, area, amenities, images, videos sql.NullString
	var latitude, longitude sql.NullFloat64
	var rooms, bathrooms sql.NullInt64
	var brokerName, brokerPhone, brokerEmail string
	var brokerRating sql.NullFloat64
	var brokerReviews sql.NullInt64

	err := row.Scan(
		&p.ID, &p.Title, &description, &p.Category, &p.Price, &p.Currency,
		&p.Location.District, &area, &p.Location.Address, &latitude, &longitude,
		&p.Features.Size, &rooms, &bathrooms, &amenities, &images, &videos,
		&p.Status, &p.BrokerID, &p.IsVerified, &p.Views, &p.CreatedAt, &p.UpdatedAt,
		&brokerName, &brokerPhone, &brokerEmail,
		&brokerRating, &brokerReviews,
	)
	if err != nil {
		return nil, wrapErr(err)
	}

	p.Description = description.String
	p.Location.Area = area.String
	if latitude.Valid || longitude.Valid {
		p.Location.Coordinates = &models.Coordinates{Lat: latitude.Float64, Lng: longitude.Float64}
	}
	if rooms.Valid {
		v := int(rooms.Int64)
		p.Features.Rooms = &v
	}
	if bathrooms.Valid {
		v := int(bathrooms.Int64)
		p.Features.Bathrooms = &v
	}
	p.Features.Amenities = unmarshalList(amenities)
	p.Images = unmarshalList(images)
	p.Videos = unmarshalList(videos)

	rating := brokerRating.Float64
	p.Broker = &models.BrokerSummary{
		Name:         brokerName,
		Phone:        brokerPhone,
		Email:        brokerEmail,
		Rating:       &rating,
		TotalReviews: int(brokerReviews.Int64),
	}
	return &p, nil
}

// ListBrokerProperties returns the broker's own listings with a per-property
// message count.
func (d *Database) ListBrokerProperties(brokerID string) ([]*models.Property, error) {
	rows, err := d.db.Query(`
		SELECT
			p.id, p.title, p.description, p.category, p.price, p.currency,
			p.district, p.area, p.address, p.latitude, p.longitude,
			p.size, p.rooms, p.bathrooms, p.amenities, p.images,
			p.status, p.broker_id, p.is_verified, p.views, p.created_at, p.updated_at,
			COUNT(m.id)
		FROM properties p
		LEFT JOIN messages m ON p.id = m.property_id
		WHERE p.broker_id = ?
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`, brokerID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		var p models.Property
		var description, area, amenities, images sql.NullString
		var latitude, longitude sql.NullFloat64
		var rooms, bathrooms sql.NullInt64
		var messageCount int

		err := rows.Scan(
			&p.ID, &p.Title, &description, &p.Category, &p.Price, &p.Currency,
			&p.Location.District, &area, &p.Location.Address, &latitude, &longitude,
			&p.Features.Size, &rooms, &bathrooms, &amenities, &images,
			&p.Status, &p.BrokerID, &p.IsVerified, &p.Views, &p.CreatedAt, &p.UpdatedAt,
			&messageCount,
		)
		if err != nil {
			return nil, err
		}

		p.Description = description.String
		p.Location.Area = area.String
		if latitude.Valid || longitude.Valid {
			p.Location.Coordinates = &models.Coordinates{Lat: latitude.Float64, Lng: longitude.Float64}
		}
		if rooms.Valid {
			v := int(rooms.Int64)
			p.Features.Rooms = &v
		}
		if bathrooms.Valid {
			v := int(bathrooms.Int64)
			p.Features.Bathrooms = &v
		}
		p.Features.Amenities = unmarshalList(amenities)
		p.Images = unmarshalList(images)
		p.MessageCount = messageCount

		properties = append(properties, &p)
	}
	return properties, rows.Err()
}

func (d *Database) IncrementPropertyViews(id string) error {
	res, err := d.db.Exec(`UPDATE properties SET views = views + 1 WHERE id = ?`, id)
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

func (d *Database) GetPropertyTitle(id string) (string, error) {
	var title string
	err := d.db.QueryRow(`SELECT title FROM properties WHERE id = ?`, id).Scan(&title)
	if err != nil {
		return "", wrapErr(err)
	}
	return title, nil
}

// ListTakenProperties returns the properties a client marked as taken, each with
// the review that took it, newest review first.
func (d *Database) ListTakenProperties(clientID string) ([]*models.TakenProperty, error) {
	rows, err := d.db.Query(`
		SELECT
			p.id, p.title, p.description, p.category, p.price, p.currency,
			p.district, p.area, p.address,
			p.size, p.rooms, p.bathrooms, p.amenities, p.images,
			u.name, u.phone, u.email,
			r.property_rating, r.property_comment, r.created_at
		FROM properties p
		JOIN users u ON p.broker_id = u.id
		JOIN reviews r ON p.id = r.property_id
		WHERE r.client_id = ? AND r.property_taken = 1
		ORDER BY r.created_at DESC
	`, clientID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	properties := []*models.TakenProperty{}
	for rows.Next() {
		var tp models.TakenProperty
		var description, area, amenities, images, comment sql.NullString
		var rooms, bathrooms sql.NullInt64
		var brokerName, brokerPhone, brokerEmail string

		err := rows.Scan(
			&tp.ID, &tp.Title, &description, &tp.Category, &tp.Price, &tp.Currency,
			&tp.Location.District, &area, &tp.Location.Address,
			&tp.Features.Size, &rooms, &bathrooms, &amenities, &images,
			&brokerName, &brokerPhone, &brokerEmail,
			&tp.Review.Rating, &comment, &tp.Review.Date,
		)
		if err != nil {
			return nil, err
		}

		tp.Description = description.String
		tp.Location.Area = area.String
		if rooms.Valid {
			v := int(rooms.Int64)
			tp.Features.Rooms = &v
		}
		if bathrooms.Valid {
			v := int(bathrooms.Int64)
			tp.Features.Bathrooms = &v
		}
		tp.Features.Amenities = unmarshalList(amenities)
		tp.Images = unmarshalList(images)
		tp.Review.Comment = comment.String
		tp.Broker = &models.BrokerSummary{Name: brokerName, Phone: brokerPhone, Email: brokerEmail}

		properties = append(properties, &tp)
	}
	return properties, rows.Err()
}
