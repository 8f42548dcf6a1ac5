package router

import (
	"context"
	"net/http"
	"time"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	Reserve(c *ginext.Context)
	GetBooking(c *ginext.Context)
	ListBookings(c *ginext.Context)
	ApplyDecision(c *ginext.Context)
	Decide(c *ginext.Context)
	VerifyPayment(c *ginext.Context)
	ListSlots(c *ginext.Context)
	Reconcile(c *ginext.Context)
}

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

func InitRouter(mode string, h Handler, health map[string]Pinger, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Reservations
		api.POST("/reservations", h.Reserve)

		// Bookings
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings/:id/decision", h.ApplyDecision)
		api.POST("/bookings/:id/decide", h.Decide)

		// Payments
		api.POST("/payments/verify", h.VerifyPayment)

		// Slots
		api.GET("/slots", h.ListSlots)
		api.POST("/slots/reconcile", h.Reconcile)
	}

	router.GET("/health", func(c *ginext.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := make(ginext.H, len(health))
		status := http.StatusOK
		for name, ping := range health {
			if err := ping(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, ginext.H{"status": state, "checks": checks})
	})

	return router
}
