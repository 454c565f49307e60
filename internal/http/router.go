package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"railbook/internal/config"
	"railbook/internal/http/handlers"
	"railbook/internal/http/middleware"
	"railbook/internal/services"
	"railbook/internal/storage"
)

// NewRouter wires middleware, services and handlers onto a gin engine. All
// dependencies arrive explicitly; nothing here reads ambient state.
func NewRouter(cfg config.Config, store storage.Store, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery(), middleware.CORS())
	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	h := handlers.Handlers{
		Auth: services.AuthService{
			Store:     store,
			JWTSecret: []byte(cfg.JWTSecret),
			TokenTTL:  cfg.TokenTTL,
		},
		Trains: services.TrainService{Store: store},
		Reservations: services.ReservationService{
			Store:    store,
			LockWait: cfg.LockWaitTimeout,
			Logger:   log,
		},
		Log: log,
	}

	r.GET("/health", h.Health)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	r.POST("/trains", middleware.RequireAdminKey(cfg.AdminAPIKey), h.CreateTrain)
	r.GET("/trains/availability", h.Availability)

	bookings := r.Group("/bookings", middleware.RequireAuth([]byte(cfg.JWTSecret)))
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/ticket", h.GetBookingTicket)
	}

	return r
}
