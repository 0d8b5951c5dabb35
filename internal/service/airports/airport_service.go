package airports

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/keshster98/cashfly-backend/internal/clock"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/keshster98/cashfly-backend/internal/repository"
)

type AirportUseCase interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id string) (*domain.Airport, error)
	Create(ctx context.Context, input AirportInput) (*domain.Airport, error)
	Update(ctx context.Context, id string, input AirportInput) (*domain.Airport, error)
	Delete(ctx context.Context, id string) (*domain.Airport, error)
}

type AirportCache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AirportService struct {
	repo        repository.AirportRepository
	clock       *clock.Clock
	cache       AirportCache
	producer    Producer
	eventsTopic string
}

type Option func(*AirportService)

func WithCache(cache AirportCache) Option {
	return func(s *AirportService) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, topic string) Option {
	return func(s *AirportService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewAirportService(repo repository.AirportRepository, clk *clock.Clock, opts ...Option) *AirportService {
	s := &AirportService{repo: repo, clock: clk}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, list)
	}
	return list, nil
}

func (s *AirportService) GetByID(ctx context.Context, id string) (*domain.Airport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirportService) Create(ctx context.Context, input AirportInput) (*domain.Airport, error) {
	if err := s.checkRules(ctx, input, nil); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	airport := &domain.Airport{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Location:  input.Location,
		Code:      input.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, airport); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, kafka.EventAirportCreated, airport)
	return airport, nil
}

func (s *AirportService) Update(ctx context.Context, id string, input AirportInput) (*domain.Airport, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRules(ctx, input, existing); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = input.Name
	updated.Location = input.Location
	updated.Code = input.Code
	updated.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, kafka.EventAirportUpdated, &updated)
	return &updated, nil
}

func (s *AirportService) Delete(ctx context.Context, id string) (*domain.Airport, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, kafka.EventAirportDeleted, deleted)
	return deleted, nil
}

func (s *AirportService) afterWrite(ctx context.Context, eventType string, a *domain.Airport) {
	if s.cache != nil {
		if err := s.cache.InvalidateAirports(ctx); err != nil {
			log.Printf("WARNING: failed to invalidate airports cache: %v", err)
		}
	}
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.RecordEvent{
		Type:       eventType,
		Entity:     "airport",
		ID:         a.ID,
		Data:       a,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, a.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for airport %s: %v", eventType, a.ID, err)
	}
}

var _ AirportUseCase = (*AirportService)(nil)
