package database

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")

	// ErrNotInitialized means the schema has not been created yet.
	ErrNotInitialized = errors.New("database not initialized")
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

// wrapErr maps driver-level failures onto the store's error taxonomy. A missing
// table is reported as ErrNotInitialized instead of degrading into empty results.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "no such table") {
		return ErrNotInitialized
	}
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

// parseTimestamp handles the formats SQLite hands back for expression columns,
// where the driver cannot infer a declared TIMESTAMP type.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	logrus.WithField("value", s).Debug("Unparseable timestamp from driver, using zero time")
	return time.Time{}
}
