package database

import (
	"database/sql"

	"brokerconnect/server/internal/models"
)

const userWithBrokerColumns = `
	u.id, u.email, u.name, u.phone, u.password_hash, u.role, u.is_verified, u.created_at,
	b.license_number, b.nin, b.verification_status, b.rating, b.total_reviews, b.commission`

func scanUserWithBroker(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var license, nin, verification sql.NullString
	var rating, commission sql.NullFloat64
	var totalReviews sql.NullInt64

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.Role, &u.IsVerified, &u.CreatedAt,
		&license, &nin, &verification, &rating, &totalReviews, &commission,
	)
	if err != nil {
		return nil, err
	}

	if u.Role == models.RoleBroker {
		profile := &models.BrokerProfile{
			LicenseNumber:      license.String,
			NationalID:         nin.String,
			VerificationStatus: models.VerificationPending,
			Commission:         5,
		}
		if verification.Valid {
			profile.VerificationStatus = verification.String
		}
		if rating.Valid {
			profile.Rating = rating.Float64
		}
		if totalReviews.Valid {
			profile.TotalReviews = int(totalReviews.Int64)
		}
		if commission.Valid {
			profile.Commission = commission.Float64
		}
		u.Broker = profile
	}
	return &u, nil
}

func (d *Database) CreateUser(u *models.User) error {
	_, err := d.db.Exec(`
		INSERT INTO users (id, email, name, phone, password_hash, role, is_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.Phone, u.PasswordHash, u.Role, u.IsVerified)
	return wrapErr(err)
}

func (d *Database) CreateBrokerProfile(userID, licenseNumber, nationalID string) error {
	_, err := d.db.Exec(`
		INSERT INTO brokers (user_id, license_number, nin)
		VALUES (?, ?, ?)
	`, userID, licenseNumber, nationalID)
	return wrapErr(err)
}

func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	row := d.db.QueryRow(`
		SELECT `+userWithBrokerColumns+`
		FROM users u
		LEFT JOIN brokers b ON u.id = b.user_id
		WHERE u.email = ?
	`, email)

	u, err := scanUserWithBroker(row)
	if err != nil {
		return nil, wrapErr(err)
	}
	return u, nil
}

func (d *Database) GetUserByID(id string) (*models.User, error) {
	row := d.db.QueryRow(`
		SELECT `+userWithBrokerColumns+`
		FROM users u
		LEFT JOIN brokers b ON u.id = b.user_id
		WHERE u.id = ?
	`, id)

	u, err := scanUserWithBroker(row)
	if err != nil {
		return nil, wrapErr(err)
	}
	return u, nil
}

func (d *Database) GetUserName(id string) (string, error) {
	var name string
	err := d.db.QueryRow(`SELECT name FROM users WHERE id = ?`, id).Scan(&name)
	if err != nil {
		return "", wrapErr(err)
	}
	return name, nil
}

// ListBrokers returns every broker with their profile, newest first.
func (d *Database) ListBrokers() ([]*models.User, error) {
	rows, err := d.db.Query(`
		SELECT ` + userWithBrokerColumns + `
		FROM users u
		JOIN brokers b ON u.id = b.user_id
		WHERE u.role = 'broker'
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var brokers []*models.User
	for rows.Next() {
		u, err := scanUserWithBroker(rows)
		if err != nil {
			return nil, err
		}
		brokers = append(brokers, u)
	}
	return brokers, rows.Err()
}

// ListUsers returns every account, brokers joined with their profile.
func (d *Database) ListUsers() ([]*models.User, error) {
	rows, err := d.db.Query(`
		SELECT ` + userWithBrokerColumns + `
		FROM users u
		LEFT JOIN brokers b ON u.id = b.user_id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUserWithBroker(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetBrokerVerification updates both the broker profile status and the user's
// verified flag.
func (d *Database) SetBrokerVerification(userID, status string, verified bool) error {
	res, err := d.db.Exec(`
		UPDATE brokers SET verification_status = ? WHERE user_id = ?
	`, status, userID)
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

	_, err = d.db.Exec(`UPDATE users SET is_verified = ? WHERE id = ?`, verified, userID)
	return wrapErr(err)
}
