package flights

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/keshster98/cashfly-backend/internal/clock"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/keshster98/cashfly-backend/internal/repository"
)

// AllFilter is the query value meaning "do not filter on this field".
const AllFilter = "all"

type FlightUseCase interface {
	List(ctx context.Context, query ListQuery) ([]domain.FlightDetails, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id string, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id string) (*domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context, key string) ([]domain.FlightDetails, error)
	SetFlights(ctx context.Context, key string, flights []domain.FlightDetails) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// ListQuery holds the raw search parameters. Empty or "all" leaves a field
// unfiltered.
type ListQuery struct {
	DepartureAirport  string
	ArrivalAirport    string
	DepartureDateTime string
}

type FlightService struct {
	repo        repository.FlightRepository
	airports    repository.AirportRepository
	clock       *clock.Clock
	cache       FlightCache
	producer    Producer
	eventsTopic string
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithEvents(producer Producer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func NewFlightService(repo repository.FlightRepository, airports repository.AirportRepository, clk *clock.Clock, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, airports: airports, clock: clk}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) List(ctx context.Context, query ListQuery) ([]domain.FlightDetails, error) {
	filter, err := s.buildFilter(query)
	if err != nil {
		return nil, err
	}
	key := cacheKey(filter)

	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	details, err := s.populate(ctx, list)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, key, details)
	}
	return details, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	departure, arrival, err := s.checkRules(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	flight := &domain.Flight{
		ID:                uuid.NewString(),
		DepartureDateTime: departure.UTC(),
		ArrivalDateTime:   arrival.UTC(),
		DepartureAirport:  input.DepartureAirport,
		ArrivalAirport:    input.ArrivalAirport,
		FlightNumber:      input.FlightNumber,
		Price:             input.Price,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	applyDerived(flight)

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, kafka.EventFlightCreated, flight)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id string, input FlightInput) (*domain.Flight, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	departure, arrival, err := s.checkRules(ctx, input, existing)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.DepartureDateTime = departure.UTC()
	updated.ArrivalDateTime = arrival.UTC()
	updated.DepartureAirport = input.DepartureAirport
	updated.ArrivalAirport = input.ArrivalAirport
	updated.FlightNumber = input.FlightNumber
	updated.Price = input.Price
	updated.UpdatedAt = s.clock.Now().UTC()
	applyDerived(&updated)

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, kafka.EventFlightUpdated, &updated)
	return &updated, nil
}

func (s *FlightService) Delete(ctx context.Context, id string) (*domain.Flight, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, kafka.EventFlightDeleted, deleted)
	return deleted, nil
}

// buildFilter turns a departure date-time into the window from that instant
// to the end of its local calendar day.
func (s *FlightService) buildFilter(q ListQuery) (domain.FlightFilter, error) {
	var filter domain.FlightFilter
	if !isAll(q.DepartureAirport) {
		filter.DepartureAirport = q.DepartureAirport
	}
	if !isAll(q.ArrivalAirport) {
		filter.ArrivalAirport = q.ArrivalAirport
	}
	if !isAll(q.DepartureDateTime) {
		after, err := s.clock.Parse(q.DepartureDateTime)
		if err != nil {
			return domain.FlightFilter{}, err
		}
		before := s.clock.StartOfDay(after).AddDate(0, 0, 1)
		filter.DepartAfter = &after
		filter.DepartBefore = &before
	}
	return filter, nil
}

func (s *FlightService) populate(ctx context.Context, list []domain.Flight) ([]domain.FlightDetails, error) {
	details := make([]domain.FlightDetails, 0, len(list))
	if len(list) == 0 {
		return details, nil
	}

	airports, err := s.airports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	byID := make(map[string]*domain.Airport, len(airports))
	for i := range airports {
		byID[airports[i].ID] = &airports[i]
	}

	for _, f := range list {
		details = append(details, domain.FlightDetails{
			Flight:               f,
			DepartureAirportInfo: byID[f.DepartureAirport],
			ArrivalAirportInfo:   byID[f.ArrivalAirport],
		})
	}
	return details, nil
}

func (s *FlightService) afterWrite(ctx context.Context, eventType string, f *domain.Flight) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.Printf("WARNING: failed to invalidate flights cache: %v", err)
		}
	}
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.RecordEvent{
		Type:       eventType,
		Entity:     "flight",
		ID:         f.ID,
		Data:       f,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, f.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for flight %s: %v", eventType, f.ID, err)
	}
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllFilter)
}

func cacheKey(f domain.FlightFilter) string {
	var after, before string
	if f.DepartAfter != nil {
		after = f.DepartAfter.UTC().Format(time.RFC3339Nano)
	}
	if f.DepartBefore != nil {
		before = f.DepartBefore.UTC().Format(time.RFC3339Nano)
	}
	return strings.Join([]string{f.DepartureAirport, f.ArrivalAirport, after, before}, "|")
}

var _ FlightUseCase = (*FlightService)(nil)
