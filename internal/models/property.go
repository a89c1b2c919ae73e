package models

import "time"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	District    string       `json:"district"`
	Area        string       `json:"area"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Features struct {
	Size      float64  `json:"size"`
	Rooms     *int     `json:"rooms"`
	Bathrooms *int     `json:"bathrooms"`
	Amenities []string `json:"amenities"`
}

type BrokerSummary struct {
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Rating       *float64 `json:"rating"`
	ReviewCount  int      `json:"reviewCount,omitempty"`
	TotalReviews int      `json:"totalReviews,omitempty"`
}

type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Location    Location  `json:"location"`
	Features    Features  `json:"features"`
	Images      []string  `json:"images"`
	Videos      []string  `json:"videos,omitempty"`
	Status      string    `json:"status"`
	BrokerID    string    `json:"brokerId"`
	IsVerified  bool      `json:"isVerified"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Aggregates joined from reviews
	Broker      *BrokerSummary `json:"broker,omitempty"`
	Rating      *float64       `json:"rating,omitempty"`
	ReviewCount int            `json:"reviewCount"`

	// Broker dashboard extra
	MessageCount int `json:"messageCount,omitempty"`
}

// PropertyFilter is the AND-combined predicate set for the public listing.
type PropertyFilter struct {
	Category string
	District string
	MinPrice string
	MaxPrice string
	Rooms    string

	// When set, properties the client marked as taken are excluded.
	ClientID string
}

// TakenProperty is a property the client marked as taken, with their review.
type TakenProperty struct {
	Property
	Review TakenReview `json:"review"`
}

type TakenReview struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}
