package models

import "time"

type Booking struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	BrokerID    string    `json:"broker_id"`
	PropertyID  string    `json:"property_id"`
	VisitDate   string    `json:"visit_date"`
	VisitTime   string    `json:"visit_time"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingDetail is a booking joined with property and counterparty display fields.
type BookingDetail struct {
	Booking
	PropertyTitle string `json:"property_title"`
	District      string `json:"district"`
	Area          string `json:"area"`
	BrokerName    string `json:"broker_name,omitempty"`
	BrokerPhone   string `json:"broker_phone,omitempty"`
}
