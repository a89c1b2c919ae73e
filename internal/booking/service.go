package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"brokerconnect/server/internal/models"
)

var (
	// ErrForbidden means the caller is not the party allowed to act on the
	// booking in this step.
	ErrForbidden = errors.New("not allowed to modify this booking")

	// ErrInvalidStatus means the requested status is not one a broker may set.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition means the booking's current state does not permit
	// the requested action.
	ErrInvalidTransition = errors.New("invalid booking transition")

	// ErrInvalidAction means the reschedule response action was neither accept
	// nor counter.
	ErrInvalidAction = errors.New("invalid reschedule action")
)

// Store is the persistence capability the state machine needs.
type Store interface {
	CreateBooking(b *models.Booking) error
	GetBooking(id string) (*models.Booking, error)
	UpdateBookingStatus(id, status string) error
	UpdateBookingProposal(id, status, visitDate, visitTime, message string) error
	ListClientBookings(clientID string) ([]*models.BookingDetail, error)
	ListBrokerBookings(brokerID string) ([]*models.BookingDetail, error)
	GetPropertyTitle(propertyID string) (string, error)
}

// Notifier consumes the domain events each transition produces. Emission is
// fire-and-forget: implementations never report failure back here.
type Notifier interface {
	Emit(userID, notifType, title, message, relatedID string)
}

// Service owns the booking lifecycle. Every transition is one booking row update
// followed by a best-effort notification; the two are deliberately not a single
// transaction (the notification is advisory, not authoritative).
type Service struct {
	store    Store
	notifier Notifier
	logger   *logrus.Logger
}

func NewService(store Store, notifier Notifier, logger *logrus.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

type CreateRequest struct {
	BrokerID    string
	PropertyID  string
	VisitDate   string
	VisitTime   string
	ClientName  string
	ClientPhone string
	Message     string
}

// Create opens a visit request in state pending and notifies the broker.
func (s *Service) Create(clientID string, req CreateRequest) (*models.Booking, error) {
	title, err := s.store.GetPropertyTitle(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		BrokerID:    req.BrokerID,
		PropertyID:  req.PropertyID,
		VisitDate:   req.VisitDate,
		VisitTime:   req.VisitTime,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Message:     req.Message,
		Status:      StatusPending,
	}
	if err := s.store.CreateBooking(booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.notifier.Emit(req.BrokerID, models.NotificationBooking,
		"New Property Visit Request",
		fmt.Sprintf("%s wants to visit %s on %s at %s",
			req.ClientName, title, req.VisitDate, req.VisitTime),
		booking.ID)

	return booking, nil
}

// SetStatus is the broker's direct transition: confirm, cancel or complete.
// Confirming a counter_pending booking accepts the client's counter-proposal.
func (s *Service) SetStatus(bookingID, brokerID, status string) error {
	if !brokerStatusTargets[status] {
		return ErrInvalidStatus
	}

	b, err := s.store.GetBooking(bookingID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if b.BrokerID != brokerID {
		return ErrForbidden
	}
	if !CanSetStatus(b.Status, status) {
		return ErrInvalidTransition
	}

	if err := s.store.UpdateBookingStatus(bookingID, status); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	title := s.propertyTitle(b.PropertyID)
	message := fmt.Sprintf("Your visit request for %s has been %s", title, status)
	if status == StatusConfirmed && b.Status == StatusCounterPending {
		message = fmt.Sprintf("Your proposed time for %s has been accepted by the broker", title)
	}
	s.notifier.Emit(b.ClientID, models.NotificationBookingUpdate,
		"Booking Status Updated", message, bookingID)

	return nil
}

// Reschedule is the broker proposing a new slot. The prior date, time and note
// are overwritten; no proposal history is kept.
func (s *Service) Reschedule(bookingID, brokerID, visitDate, visitTime, note string) error {
	b, err := s.store.GetBooking(bookingID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if b.BrokerID != brokerID {
		return ErrForbidden
	}
	if !CanReschedule(b.Status) {
		return ErrInvalidTransition
	}

	err = s.store.UpdateBookingProposal(bookingID, StatusReschedulePending, visitDate, visitTime, note)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	title := s.propertyTitle(b.PropertyID)
	s.notifier.Emit(b.ClientID, models.NotificationBookingUpdate,
		"Visit Rescheduled - Confirmation Needed",
		fmt.Sprintf("Your visit for %s has been rescheduled to %s at %s. Please confirm or propose a new time.",
			title, visitDate, visitTime),
		bookingID)

	return nil
}

// RespondToReschedule is the client answering a broker proposal: accept confirms
// the proposed slot, counter flips the turn back to the broker with a new one.
func (s *Service) RespondToReschedule(bookingID, clientID, action, visitDate, visitTime, note string) error {
	b, err := s.store.GetBooking(bookingID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if b.ClientID != clientID {
		return ErrForbidden
	}
	if !CanRespond(b.Status) {
		return ErrInvalidTransition
	}

	title := s.propertyTitle(b.PropertyID)

	switch action {
	case "accept":
		if err := s.store.UpdateBookingStatus(bookingID, StatusConfirmed); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		s.notifier.Emit(b.BrokerID, models.NotificationBookingUpdate,
			"Reschedule Accepted",
			fmt.Sprintf("%s accepted the new time for %s", b.ClientName, title),
			bookingID)
		return nil

	case "counter":
		err := s.store.UpdateBookingProposal(bookingID, StatusCounterPending, visitDate, visitTime, note)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		s.notifier.Emit(b.BrokerID, models.NotificationBookingUpdate,
			"New Time Proposed",
			fmt.Sprintf("%s proposed a new time for %s: %s at %s",
				b.ClientName, title, visitDate, visitTime),
			bookingID)
		return nil

	default:
		return ErrInvalidAction
	}
}

func (s *Service) ListForClient(clientID string) ([]*models.BookingDetail, error) {
	return s.store.ListClientBookings(clientID)
}

func (s *Service) ListForBroker(brokerID string) ([]*models.BookingDetail, error) {
	return s.store.ListBrokerBookings(brokerID)
}

// propertyTitle is only used for notification copy, so a lookup failure degrades
// to a placeholder instead of failing the transition.
func (s *Service) propertyTitle(propertyID string) string {
	title, err := s.store.GetPropertyTitle(propertyID)
	if err != nil {
		s.logger.WithError(err).WithField("property_id", propertyID).
			Warn("Failed to load property title for notification")
		return "the property"
	}
	return title
}
