package database

// InitSchema creates all tables if they do not exist yet. Statements are
// idempotent so the server can run this on every boot.
func (d *Database) InitSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('client', 'broker', 'admin')),
			is_verified INTEGER DEFAULT 0,
			avatar TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS brokers (
			user_id TEXT PRIMARY KEY,
			license_number TEXT NOT NULL,
			nin TEXT NOT NULL,
			verification_status TEXT DEFAULT 'pending'
				CHECK (verification_status IN ('pending', 'verified', 'rejected')),
			rating REAL DEFAULT 0,
			total_reviews INTEGER DEFAULT 0,
			commission REAL DEFAULT 5.0,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL CHECK (category IN ('land', 'rental', 'house', 'commercial')),
			price REAL NOT NULL,
			currency TEXT DEFAULT 'UGX' CHECK (currency IN ('UGX', 'USD')),
			district TEXT NOT NULL,
			area TEXT,
			address TEXT NOT NULL,
			latitude REAL,
			longitude REAL,
			size REAL NOT NULL,
			rooms INTEGER,
			bathrooms INTEGER,
			amenities TEXT,
			images TEXT,
			videos TEXT,
			status TEXT DEFAULT 'available'
				CHECK (status IN ('available', 'sold', 'rented', 'pending')),
			broker_id TEXT NOT NULL,
			is_verified INTEGER DEFAULT 0,
			views INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (broker_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			client_id TEXT NOT NULL,
			broker_id TEXT NOT NULL,
			property_id TEXT NOT NULL,
			visit_date TEXT NOT NULL,
			visit_time TEXT NOT NULL,
			client_name TEXT NOT NULL,
			client_phone TEXT NOT NULL,
			message TEXT,
			status TEXT DEFAULT 'pending' CHECK (status IN (
				'pending', 'confirmed', 'cancelled', 'completed',
				'reschedule_pending', 'counter_pending'
			)),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (client_id) REFERENCES users(id),
			FOREIGN KEY (broker_id) REFERENCES users(id),
			FOREIGN KEY (property_id) REFERENCES properties(id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			property_id TEXT,
			message TEXT NOT NULL,
			is_read INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (sender_id) REFERENCES users(id),
			FOREIGN KEY (receiver_id) REFERENCES users(id),
			FOREIGN KEY (property_id) REFERENCES properties(id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('message', 'booking', 'booking_update')),
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			is_read INTEGER DEFAULT 0,
			related_id TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL UNIQUE,
			client_id TEXT NOT NULL,
			broker_id TEXT NOT NULL,
			property_id TEXT NOT NULL,
			broker_rating INTEGER NOT NULL CHECK (broker_rating >= 1 AND broker_rating <= 5),
			broker_comment TEXT,
			property_rating INTEGER NOT NULL CHECK (property_rating >= 1 AND property_rating <= 5),
			property_comment TEXT,
			property_taken INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (booking_id) REFERENCES bookings(id),
			FOREIGN KEY (client_id) REFERENCES users(id),
			FOREIGN KEY (broker_id) REFERENCES users(id),
			FOREIGN KEY (property_id) REFERENCES properties(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_client ON bookings(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_broker ON bookings(broker_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, is_read)`,
	}

	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
