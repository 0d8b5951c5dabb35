package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	airportsCollection = "airports"
	flightsCollection  = "flights"
	bookingsCollection = "bookings"
	usersCollection    = "users"
)

// OpenMongo connects, pings and makes sure the indexes exist.
func OpenMongo(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		Airports: NewMongoAirportRepository(db.Collection(airportsCollection)),
		Flights:  NewMongoFlightRepository(db.Collection(flightsCollection)),
		Bookings: NewMongoBookingRepository(db.Collection(bookingsCollection)),
		Users:    NewMongoUserRepository(db.Collection(usersCollection)),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: client.Disconnect,
	}, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		airportsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "code", Value: 1}}},
		},
		flightsCollection: {
			{Keys: bson.D{{Key: "flightNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "departureDateTime", Value: 1}}},
		},
		bookingsCollection: {
			{Keys: bson.D{{Key: "flight", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// mongoError mirrors pgError for the document store.
func mongoError(err error, op string, onDuplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if onDuplicate != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, onDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func findOneDoc[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, op string) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

func getDoc[T any](ctx context.Context, coll *mongo.Collection, id, op string) (*T, error) {
	var v T
	if err := coll.FindOne(ctx, byID(id)).Decode(&v); err != nil {
		return nil, mongoError(err, op+" "+id, nil)
	}
	return &v, nil
}

func deleteDoc[T any](ctx context.Context, coll *mongo.Collection, id, op string) (*T, error) {
	var v T
	if err := coll.FindOneAndDelete(ctx, byID(id)).Decode(&v); err != nil {
		return nil, mongoError(err, op+" "+id, nil)
	}
	return &v, nil
}

func replaceDoc(ctx context.Context, coll *mongo.Collection, id string, doc interface{}, op string, onDuplicate error) error {
	res, err := coll.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return mongoError(err, op, onDuplicate)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", op, id, domain.ErrNotFound)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, op string) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
