package models

import "time"

type Review struct {
	ID              string    `json:"id"`
	BookingID       string    `json:"booking_id"`
	ClientID        string    `json:"client_id"`
	BrokerID        string    `json:"broker_id"`
	PropertyID      string    `json:"property_id"`
	BrokerRating    int       `json:"broker_rating"`
	BrokerComment   string    `json:"broker_comment"`
	PropertyRating  int       `json:"property_rating"`
	PropertyComment string    `json:"property_comment"`
	PropertyTaken   bool      `json:"property_taken"`
	CreatedAt       time.Time `json:"created_at"`
}
