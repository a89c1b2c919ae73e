package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handler.Register)
			authRoutes.POST("/login", handler.Login)
		}

		users := api.Group("/users", handler.RequireAuth())
		{
			users.GET("/me", handler.GetCurrentUser)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", handler.OptionalAuth(), handler.ListProperties)
			properties.POST("", handler.RequireAuth(), handler.CreateProperty)
			properties.GET("/broker/properties", handler.RequireAuth(), handler.ListBrokerProperties)
			properties.GET("/client/taken", handler.RequireAuth(), handler.ListTakenProperties)
			properties.GET("/:id", handler.GetProperty)
			properties.POST("/:id/view", handler.TrackPropertyView)
		}

		bookings := api.Group("/bookings", handler.RequireAuth())
		{
			bookings.POST("", handler.CreateBooking)
			bookings.GET("/client", handler.ListClientBookings)
			bookings.GET("/broker", handler.ListBrokerBookings)
			bookings.PUT("/:id/status", handler.UpdateBookingStatus)
			bookings.PUT("/:id/reschedule", handler.RescheduleBooking)
			bookings.PUT("/:id/reschedule-response", handler.RespondToReschedule)
		}

		messages := api.Group("/messages", handler.RequireAuth())
		{
			messages.POST("", handler.SendMessage)
			messages.GET("/unread-count", handler.UnreadMessageCount)
			messages.GET("/conversations", handler.ListConversations)
			messages.GET("/property/:propertyId/chats", handler.ListPropertyChats)
			messages.GET("/:otherUserId", handler.GetThread)
		}

		notifications := api.Group("/notifications", handler.RequireAuth())
		{
			notifications.GET("", handler.ListNotifications)
			notifications.PUT("/:id/read", handler.MarkNotificationRead)
			notifications.GET("/unread-count", handler.UnreadNotificationCount)
		}

		reviews := api.Group("/reviews", handler.RequireAuth())
		{
			reviews.POST("", handler.SubmitReview)
			reviews.GET("/booking/:bookingId", handler.GetBookingReview)
		}

		admin := api.Group("/admin", handler.RequireAuth(), handler.RequireRole("admin"))
		{
			admin.GET("/brokers/pending", handler.ListBrokers)
			admin.PUT("/brokers/:id/verify", handler.VerifyBroker)
			admin.GET("/users", handler.ListUsers)
		}
	}
}
