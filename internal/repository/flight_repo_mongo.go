package repository

import (
	"context"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoFlightRepository struct {
	coll *mongo.Collection
}

func NewMongoFlightRepository(coll *mongo.Collection) FlightRepository {
	return &MongoFlightRepository{coll: coll}
}

func flightListFilter(f domain.FlightFilter) bson.M {
	filter := bson.M{}
	if f.DepartureAirport != "" {
		filter["departureAirport"] = f.DepartureAirport
	}
	if f.ArrivalAirport != "" {
		filter["arrivalAirport"] = f.ArrivalAirport
	}
	window := bson.M{}
	if f.DepartAfter != nil {
		window["$gt"] = *f.DepartAfter
	}
	if f.DepartBefore != nil {
		window["$lt"] = *f.DepartBefore
	}
	if len(window) > 0 {
		filter["departureDateTime"] = window
	}
	return filter
}

func flightKeyFilter(k domain.FlightKey) bson.M {
	return bson.M{
		"departureDateTime": k.DepartureDateTime,
		"arrivalDateTime":   k.ArrivalDateTime,
		"departureAirport":  k.DepartureAirport,
		"arrivalAirport":    k.ArrivalAirport,
		"flightNumber":      k.FlightNumber,
	}
}

func (r *MongoFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	sort := bson.D{{Key: "departureDateTime", Value: 1}, {Key: "flightNumber", Value: 1}}
	return findAll[domain.Flight](ctx, r.coll, flightListFilter(filter), sort, "list flights")
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return getDoc[domain.Flight](ctx, r.coll, id, "get flight")
}

func (r *MongoFlightRepository) FindByKey(ctx context.Context, key domain.FlightKey) (*domain.Flight, error) {
	return findOneDoc[domain.Flight](ctx, r.coll, flightKeyFilter(key), "find flight")
}

func (r *MongoFlightRepository) FindByFlightNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return findOneDoc[domain.Flight](ctx, r.coll, bson.M{"flightNumber": flightNumber}, "find flight by number")
}

func (r *MongoFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	_, err := r.coll.InsertOne(ctx, f)
	return mongoError(err, "insert flight", domain.ErrFlightNumberInUse)
}

func (r *MongoFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	return replaceDoc(ctx, r.coll, f.ID, f, "update flight", domain.ErrFlightNumberInUse)
}

func (r *MongoFlightRepository) Delete(ctx context.Context, id string) (*domain.Flight, error) {
	return deleteDoc[domain.Flight](ctx, r.coll, id, "delete flight")
}

var _ FlightRepository = (*MongoFlightRepository)(nil)
