package review

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerconnect/server/internal/database"
	"brokerconnect/server/internal/models"
)

type fakeStore struct {
	byBooking  map[string]*models.Review
	refreshed  []string
	refreshErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byBooking: make(map[string]*models.Review)}
}

func (f *fakeStore) CreateReview(r *models.Review) error {
	if _, exists := f.byBooking[r.BookingID]; exists {
		return database.ErrDuplicate
	}
	f.byBooking[r.BookingID] = r
	return nil
}

func (f *fakeStore) GetReviewForBooking(bookingID, clientID string) (*models.Review, error) {
	r, ok := f.byBooking[bookingID]
	if !ok || r.ClientID != clientID {
		return nil, database.ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) RefreshBrokerAggregates(brokerID string) error {
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.refreshed = append(f.refreshed, brokerID)
	return nil
}

func submitRequest() SubmitRequest {
	return SubmitRequest{
		BookingID:      "booking-1",
		BrokerID:       "broker-1",
		PropertyID:     "prop-1",
		BrokerRating:   5,
		BrokerComment:  "Very helpful",
		PropertyRating: 4,
		PropertyTaken:  true,
	}
}

func TestService_Submit(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, logrus.New())

	r, err := svc.Submit("client-1", submitRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "client-1", r.ClientID)
	assert.True(t, r.PropertyTaken)

	// Broker aggregates are rolled up after the insert
	assert.Equal(t, []string{"broker-1"}, store.refreshed)
}

func TestService_Submit_DuplicateBooking(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, logrus.New())

	first, err := svc.Submit("client-1", submitRequest())
	require.NoError(t, err)

	// Second review for the same booking is rejected, first is untouched
	req := submitRequest()
	req.BrokerRating = 1
	_, err = svc.Submit("client-1", req)
	assert.ErrorIs(t, err, database.ErrDuplicate)

	stored := store.byBooking["booking-1"]
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, 5, stored.BrokerRating)
}

func TestService_Submit_AggregateFailureDoesNotFail(t *testing.T) {
	store := newFakeStore()
	store.refreshErr = errors.New("brokers table locked")
	svc := NewService(store, logrus.New())

	_, err := svc.Submit("client-1", submitRequest())
	assert.NoError(t, err)
}

func TestService_ForBooking(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, logrus.New())

	_, err := svc.ForBooking("booking-1", "client-1")
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = svc.Submit("client-1", submitRequest())
	require.NoError(t, err)

	r, err := svc.ForBooking("booking-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", r.BookingID)

	// Another client cannot see it through this path
	_, err = svc.ForBooking("booking-1", "client-2")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
