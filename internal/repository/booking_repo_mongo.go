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

type MongoBookingRepository struct {
	coll *mongo.Collection
}

func NewMongoBookingRepository(coll *mongo.Collection) BookingRepository {
	return &MongoBookingRepository{coll: coll}
}

func bookingListFilter(flightID string) bson.M {
	if flightID == "" {
		return bson.M{}
	}
	return bson.M{"flight": flightID}
}

// unpaidFilter matches a missing or null paidAt.
func unpaidFilter() bson.M {
	return bson.M{"paidAt": nil}
}

func (r *MongoBookingRepository) List(ctx context.Context, flightID string) ([]domain.Booking, error) {
	return findAll[domain.Booking](ctx, r.coll, bookingListFilter(flightID), bson.D{{Key: "createdAt", Value: 1}}, "list bookings")
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return getDoc[domain.Booking](ctx, r.coll, id, "get booking")
}

func (r *MongoBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.coll.InsertOne(ctx, b)
	return mongoError(err, "insert booking", domain.ErrDuplicateRecord)
}

func (r *MongoBookingRepository) MarkPaid(ctx context.Context, id, billID string, paidAt time.Time) (*domain.Booking, error) {
	filter := unpaidFilter()
	filter["_id"] = id
	update := bson.M{"$set": bson.M{"billplzId": billID, "paidAt": paidAt}}

	var b domain.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&b)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("mark booking %s paid: %w", id, domain.ErrNoChange)
}

func (r *MongoBookingRepository) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	return deleteDoc[domain.Booking](ctx, r.coll, id, "delete booking")
}

// DeleteUnpaidBefore reads the matching bookings first so they can be
// reported, then removes exactly those ids.
func (r *MongoBookingRepository) DeleteUnpaidBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	filter := unpaidFilter()
	filter["createdAt"] = bson.M{"$lt": deadline}

	expired, err := findAll[domain.Booking](ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: 1}}, "find unpaid bookings")
	if err != nil || len(expired) == 0 {
		return expired, err
	}

	ids := make([]string, 0, len(expired))
	for _, b := range expired {
		ids = append(ids, b.ID)
	}
	filter["_id"] = bson.M{"$in": ids}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("delete unpaid bookings: %w", err)
	}
	return expired, nil
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
