package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keshster98/cashfly-backend/api"
	"github.com/keshster98/cashfly-backend/config"
	healthapi "github.com/keshster98/cashfly-backend/internal/api/health_service_api"
	"github.com/keshster98/cashfly-backend/internal/auth"
	"github.com/keshster98/cashfly-backend/internal/bootstrap"
	"github.com/keshster98/cashfly-backend/internal/cache"
	"github.com/keshster98/cashfly-backend/internal/clock"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/keshster98/cashfly-backend/internal/repository"
	"github.com/keshster98/cashfly-backend/internal/service/airports"
	"github.com/keshster98/cashfly-backend/internal/service/booking"
	"github.com/keshster98/cashfly-backend/internal/service/flights"
	"github.com/keshster98/cashfly-backend/internal/service/users"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	clk, err := clock.New(cfg.App.Timezone)
	if err != nil {
		log.Fatalf("load timezone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Database.Driver, err)
	}
	defer store.Close(context.Background())

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		log.Printf("WARNING: redis unavailable, responses will not be cached: %v", err)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.Printf("WARNING: kafka unavailable, events will be dropped: %v", err)
	}

	airportService := airports.NewAirportService(store.Airports, clk,
		airports.WithCache(redisCache),
		airports.WithEvents(producer, cfg.Kafka.EventsTopic),
	)
	flightService := flights.NewFlightService(store.Flights, store.Airports, clk,
		flights.WithCache(redisCache),
		flights.WithEvents(producer, cfg.Kafka.EventsTopic),
	)
	bookingService := booking.NewBookingService(store.Bookings, store.Flights, clk,
		booking.WithEvents(producer, cfg.Kafka.EventsTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithHoldTTL(time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute),
	)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	userService := users.NewUserService(store.Users, tokens, cfg.Auth.BcryptCost)
	if err := userService.EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	services := api.Services{
		Airports: airportService,
		Flights:  flightService,
		Bookings: bookingService,
		Users:    userService,
		Tokens:   tokens,
	}
	if rl := cfg.HTTP.RateLimit; rl.Enabled {
		services.Limiter = api.NewRateLimiter(rl.RequestsPerSecond, rl.Burst)
		go services.Limiter.Janitor(ctx)
	}

	health := healthapi.NewServer(map[string]healthapi.Probe{
		"database": store.Ping,
		"redis":    redisCache.Ping,
		"kafka":    producer.CheckConnection,
	})

	log.Printf("%s listening on %s (gRPC %s)", cfg.App.Name, cfg.HTTP.Address, cfg.GRPC.Address)
	if err := bootstrap.Run(ctx, cfg, api.NewRouter(services), health); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
