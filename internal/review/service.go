package review

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"brokerconnect/server/internal/models"
)

// Store is the persistence capability the review gate needs.
type Store interface {
	CreateReview(r *models.Review) error
	GetReviewForBooking(bookingID, clientID string) (*models.Review, error)
	RefreshBrokerAggregates(brokerID string) error
}

// Service enforces one review per booking and keeps the broker profile
// aggregates in step with the review rows.
type Service struct {
	store  Store
	logger *logrus.Logger
}

func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

type SubmitRequest struct {
	BookingID       string
	BrokerID        string
	PropertyID      string
	BrokerRating    int
	BrokerComment   string
	PropertyRating  int
	PropertyComment string
	PropertyTaken   bool
}

// Submit records the client's post-visit review. A second review for the same
// booking is rejected with the store's duplicate error; the first one stays
// untouched. PropertyTaken only affects the submitting client's own listing
// view, never the property's status.
func (s *Service) Submit(clientID string, req SubmitRequest) (*models.Review, error) {
	r := &models.Review{
		ID:              uuid.NewString(),
		BookingID:       req.BookingID,
		ClientID:        clientID,
		BrokerID:        req.BrokerID,
		PropertyID:      req.PropertyID,
		BrokerRating:    req.BrokerRating,
		BrokerComment:   req.BrokerComment,
		PropertyRating:  req.PropertyRating,
		PropertyComment: req.PropertyComment,
		PropertyTaken:   req.PropertyTaken,
	}
	if err := s.store.CreateReview(r); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Roll-up failure leaves the profile stale until the next review, which is
	// tolerable; the review itself is already durable.
	if err := s.store.RefreshBrokerAggregates(req.BrokerID); err != nil {
		s.logger.WithError(err).WithField("broker_id", req.BrokerID).
			Error("Failed to refresh broker aggregates")
	}

	return r, nil
}

// ForBooking returns the client's review of a booking, if any.
func (s *Service) ForBooking(bookingID, clientID string) (*models.Review, error) {
	return s.store.GetReviewForBooking(bookingID, clientID)
}
