package api

import (
	"os"

	"github.com/sirupsen/logrus"

	"brokerconnect/server/config"
	"brokerconnect/server/internal/auth"
	"brokerconnect/server/internal/booking"
	"brokerconnect/server/internal/database"
	"brokerconnect/server/internal/notification"
	"brokerconnect/server/internal/review"
)

type Handler struct {
	db            *database.Database
	bookings      *booking.Service
	reviews       *review.Service
	notifications *notification.Emitter
	tokens        *auth.TokenManager
	cfg           *config.Config
	logger        *logrus.Logger
}

func NewHandler(db *database.Database, tokens *auth.TokenManager, cfg *config.Config, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	emitter := notification.NewEmitter(db, logger)

	return &Handler{
		db:            db,
		bookings:      booking.NewService(db, emitter, logger),
		reviews:       review.NewService(db, logger),
		notifications: emitter,
		tokens:        tokens,
		cfg:           cfg,
		logger:        logger,
	}
}
