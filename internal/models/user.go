package models

import "time"

const (
	RoleClient = "client"
	RoleBroker = "broker"
	RoleAdmin  = "admin"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`

	// Broker profile fields, only populated when Role == "broker"
	Broker *BrokerProfile `json:"broker,omitempty"`
}

type BrokerProfile struct {
	LicenseNumber      string  `json:"licenseNumber"`
	NationalID         string  `json:"nin"`
	VerificationStatus string  `json:"verificationStatus"`
	Rating             float64 `json:"rating"`
	TotalReviews       int     `json:"totalReviews"`
	Commission         float64 `json:"commission"`
}
