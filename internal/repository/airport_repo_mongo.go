package repository

import (
	"context"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoAirportRepository struct {
	coll *mongo.Collection
}

func NewMongoAirportRepository(coll *mongo.Collection) AirportRepository {
	return &MongoAirportRepository{coll: coll}
}

func (r *MongoAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	return findAll[domain.Airport](ctx, r.coll, bson.M{}, bson.D{{Key: "code", Value: 1}, {Key: "name", Value: 1}}, "list airports")
}

func (r *MongoAirportRepository) GetByID(ctx context.Context, id string) (*domain.Airport, error) {
	return getDoc[domain.Airport](ctx, r.coll, id, "get airport")
}

func (r *MongoAirportRepository) FindByNameAndCode(ctx context.Context, name, code string) (*domain.Airport, error) {
	return findOneDoc[domain.Airport](ctx, r.coll, bson.M{"name": name, "code": code}, "find airport")
}

func (r *MongoAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	_, err := r.coll.InsertOne(ctx, a)
	return mongoError(err, "insert airport", domain.ErrDuplicateRecord)
}

func (r *MongoAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	return replaceDoc(ctx, r.coll, a.ID, a, "update airport", domain.ErrDuplicateRecord)
}

func (r *MongoAirportRepository) Delete(ctx context.Context, id string) (*domain.Airport, error) {
	return deleteDoc[domain.Airport](ctx, r.coll, id, "delete airport")
}

var _ AirportRepository = (*MongoAirportRepository)(nil)
