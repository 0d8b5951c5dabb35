package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/keshster98/cashfly-backend/config"
	"github.com/keshster98/cashfly-backend/internal/clock"
	"github.com/keshster98/cashfly-backend/internal/email"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/keshster98/cashfly-backend/internal/repository"
	"github.com/keshster98/cashfly-backend/internal/service/booking"
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

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingService := booking.NewBookingService(store.Bookings, store.Flights, clk,
		booking.WithEvents(producer, cfg.Kafka.EventsTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithHoldTTL(time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute),
	)

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(clk.Location()))
	if err != nil {
		log.Fatalf("create scheduler: %v", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(cfg.Worker.SweepMinutes)*time.Minute),
		gocron.NewTask(func() {
			expired, err := bookingService.ExpireUnpaidBookings(ctx)
			if err != nil {
				log.Printf("expire bookings error: %v", err)
				return
			}
			if len(expired) > 0 {
				log.Printf("expired %d unpaid bookings", len(expired))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Fatalf("schedule expiry sweep: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("WARNING: scheduler shutdown: %v", err)
		}
	}()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(cfg.SMTP)

	// A failed delivery is logged so one bad address does not stall the group.
	err = consumer.ConsumeBookings(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("WARNING: notify booking %s: %v", event.BookingID, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Printf("consumer stopped: %v", err)
	}
	log.Printf("worker shutting down")
}
