package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerconnect/server/internal/booking"
)

type CreateBookingRequest struct {
	BrokerID    string `json:"brokerId" binding:"required"`
	PropertyID  string `json:"propertyId" binding:"required"`
	VisitDate   string `json:"visitDate" binding:"required"`
	VisitTime   string `json:"visitTime" binding:"required"`
	ClientName  string `json:"clientName" binding:"required"`
	ClientPhone string `json:"clientPhone" binding:"required"`
	Message     string `json:"message"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	VisitDate string `json:"visitDate" binding:"required"`
	VisitTime string `json:"visitTime" binding:"required"`
	Message   string `json:"message"`
}

type RescheduleResponseRequest struct {
	Action    string `json:"action" binding:"required,oneof=accept counter"`
	VisitDate string `json:"visitDate"`
	VisitTime string `json:"visitTime"`
	Message   string `json:"message"`
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	b, err := h.bookings.Create(currentUserID(c), booking.CreateRequest{
		BrokerID:    req.BrokerID,
		PropertyID:  req.PropertyID,
		VisitDate:   req.VisitDate,
		VisitTime:   req.VisitTime,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Message:     req.Message,
	})
	if err != nil {
		h.respondError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": b,
	})
}

func (h *Handler) ListClientBookings(c *gin.Context) {
	bookings, err := h.bookings.ListForClient(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list client bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) ListBrokerBookings(c *gin.Context) {
	bookings, err := h.bookings.ListForBroker(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list broker bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus is broker-only: confirm, cancel or complete. Confirming a
// counter_pending booking accepts the client's counter-proposal.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.bookings.SetStatus(c.Param("id"), currentUserID(c), req.Status); err != nil {
		h.respondError(c, err, "Failed to update booking status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated"})
}

func (h *Handler) RescheduleBooking(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.bookings.Reschedule(c.Param("id"), currentUserID(c), req.VisitDate, req.VisitTime, req.Message)
	if err != nil {
		h.respondError(c, err, "Failed to reschedule booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reschedule proposal sent to client"})
}

func (h *Handler) RespondToReschedule(c *gin.Context) {
	var req RescheduleResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Action == "counter" && (req.VisitDate == "" || req.VisitTime == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Counter-proposal requires visitDate and visitTime"})
		return
	}

	err := h.bookings.RespondToReschedule(c.Param("id"), currentUserID(c),
		req.Action, req.VisitDate, req.VisitTime, req.Message)
	if err != nil {
		h.respondError(c, err, "Failed to respond to reschedule")
		return
	}

	if req.Action == "accept" {
		c.JSON(http.StatusOK, gin.H{"message": "Reschedule accepted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Counter-proposal sent to broker"})
}
