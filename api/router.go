package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/service/airports"
	"github.com/keshster98/cashfly-backend/internal/service/booking"
	"github.com/keshster98/cashfly-backend/internal/service/flights"
	"github.com/keshster98/cashfly-backend/internal/service/users"
)

const WelcomeMessage = "Welcome to the CashFly API!"

type Services struct {
	Airports airports.AirportUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Tokens   TokenParser
	Limiter  *RateLimiter
}

// NewRouter wires every REST route onto a fresh gin engine.
func NewRouter(s Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if s.Limiter != nil {
		router.Use(s.Limiter.Middleware())
	}

	authenticated := RequireAuth(s.Tokens)
	admin := []gin.HandlerFunc{authenticated, RequireRole(domain.RoleAdmin)}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, WelcomeMessage)
	})

	NewAirportHandler(s.Airports).Register(router.Group("/airports"), admin...)
	NewFlightHandler(s.Flights).Register(router.Group("/flights"), admin...)
	NewBookingHandler(s.Bookings).Register(router.Group("/bookings"), admin...)
	NewAuthHandler(s.Users).Register(router.Group("/auth"), authenticated)

	return router
}

func guarded(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
