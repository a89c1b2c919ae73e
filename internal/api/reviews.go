package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerconnect/server/internal/database"
	"brokerconnect/server/internal/review"
)

type SubmitReviewRequest struct {
	BookingID       string `json:"bookingId" binding:"required"`
	BrokerID        string `json:"brokerId" binding:"required"`
	PropertyID      string `json:"propertyId" binding:"required"`
	BrokerRating    int    `json:"brokerRating" binding:"required,min=1,max=5"`
	BrokerComment   string `json:"brokerComment"`
	PropertyRating  int    `json:"propertyRating" binding:"required,min=1,max=5"`
	PropertyComment string `json:"propertyComment"`
	PropertyTaken   bool   `json:"propertyTaken"`
}

func (h *Handler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	_, err := h.reviews.Submit(currentUserID(c), review.SubmitRequest{
		BookingID:       req.BookingID,
		BrokerID:        req.BrokerID,
		PropertyID:      req.PropertyID,
		BrokerRating:    req.BrokerRating,
		BrokerComment:   req.BrokerComment,
		PropertyRating:  req.PropertyRating,
		PropertyComment: req.PropertyComment,
		PropertyTaken:   req.PropertyTaken,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A review already exists for this booking"})
			return
		}
		h.respondError(c, err, "Failed to submit review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted successfully"})
}

// GetBookingReview reports whether the caller has reviewed a booking. A missing
// review is a normal answer here, not an error.
func (h *Handler) GetBookingReview(c *gin.Context) {
	r, err := h.reviews.ForBooking(c.Param("bookingId"), currentUserID(c))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"hasReview": false, "review": nil})
			return
		}
		h.respondError(c, err, "Failed to load review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasReview": true, "review": r})
}
