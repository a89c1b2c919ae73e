package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brokerconnect/server/internal/models"
)

type CreatePropertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required,oneof=land rental house commercial"`
	Price       float64  `json:"price" binding:"required"`
	Currency    string   `json:"currency" binding:"omitempty,oneof=UGX USD"`
	District    string   `json:"district" binding:"required"`
	Area        string   `json:"area"`
	Address     string   `json:"address" binding:"required"`
	Size        float64  `json:"size" binding:"required"`
	Rooms       *int     `json:"rooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// ListProperties is the public listing. An authenticated client additionally has
// their taken properties filtered out.
func (h *Handler) ListProperties(c *gin.Context) {
	filter := models.PropertyFilter{
		Category: c.Query("category"),
		District: c.Query("district"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		Rooms:    c.Query("rooms"),
		ClientID: currentUserID(c),
	}

	properties, err := h.db.ListProperties(filter)
	if err != nil {
		h.respondError(c, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "UGX"
	}

	property := &models.Property{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Currency:    currency,
		Location: models.Location{
			District: req.District,
			Area:     req.Area,
			Address:  req.Address,
		},
		Features: models.Features{
			Size:      req.Size,
			Rooms:     req.Rooms,
			Bathrooms: req.Bathrooms,
			Amenities: req.Amenities,
		},
		Images:   req.Images,
		BrokerID: currentUserID(c),
	}
	if err := h.db.CreateProperty(property); err != nil {
		h.respondError(c, err, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Property created successfully",
		"propertyId": property.ID,
	})
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.db.GetProperty(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load property")
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) ListBrokerProperties(c *gin.Context) {
	properties, err := h.db.ListBrokerProperties(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list broker properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) TrackPropertyView(c *gin.Context) {
	if err := h.db.IncrementPropertyViews(c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to track property view")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "View tracked"})
}

// ListTakenProperties returns the client's properties marked taken through the
// review flow, each with the review that took it.
func (h *Handler) ListTakenProperties(c *gin.Context) {
	properties, err := h.db.ListTakenProperties(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list taken properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}
