package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brokerconnect/server/internal/auth"
	"brokerconnect/server/internal/database"
	"brokerconnect/server/internal/models"
)

type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required,oneof=client broker admin"`
	LicenseNumber string `json:"licenseNumber"`
	NationalID    string `json:"nin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	_, err := h.db.GetUserByEmail(req.Email)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		h.respondError(c, err, "Failed to check existing email")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to hash password")
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hashed,
		Role:         req.Role,
		// Clients are usable right away; brokers wait for admin verification.
		IsVerified: req.Role == models.RoleClient,
	}
	if err := h.db.CreateUser(user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		h.respondError(c, err, "Failed to create user")
		return
	}

	if req.Role == models.RoleBroker {
		if err := h.db.CreateBrokerProfile(user.ID, req.LicenseNumber, req.NationalID); err != nil {
			h.respondError(c, err, "Failed to create broker profile")
			return
		}
		user.Broker = &models.BrokerProfile{
			LicenseNumber:      req.LicenseNumber,
			NationalID:         req.NationalID,
			VerificationStatus: models.VerificationPending,
			Commission:         5,
		}
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.respondError(c, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.respondError(c, err, "Failed to load user")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		h.respondError(c, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.db.GetUserByID(currentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to load current user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "BrokerConnect API is running"})
}
