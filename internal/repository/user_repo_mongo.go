package repository

import (
	"context"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(coll *mongo.Collection) UserRepository {
	return &MongoUserRepository{coll: coll}
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return getDoc[domain.User](ctx, r.coll, id, "get user")
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOneDoc[domain.User](ctx, r.coll, bson.M{"email": email}, "find user by email")
}

func (r *MongoUserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.coll.InsertOne(ctx, u)
	return mongoError(err, "insert user", domain.ErrDuplicateRecord)
}

var _ UserRepository = (*MongoUserRepository)(nil)
