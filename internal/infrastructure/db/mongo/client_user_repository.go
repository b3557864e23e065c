package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

const clientUsersCollection = "client_users"

// ClientUserRepository persists portal logins.
type ClientUserRepository struct {
	coll *mongo.Collection
}

func NewClientUserRepository(db *mongo.Database) *ClientUserRepository {
	return &ClientUserRepository{coll: db.Collection(clientUsersCollection)}
}

type mongoClientUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ClientID     string             `bson:"client_id"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (mu mongoClientUser) toDomain() *domain.ClientUser {
	return &domain.ClientUser{
		ID:           mu.ID.Hex(),
		ClientID:     mu.ClientID,
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		IsActive:     mu.IsActive,
		CreatedAt:    mu.CreatedAt,
	}
}

func (r *ClientUserRepository) Create(ctx context.Context, user *domain.ClientUser) (*domain.ClientUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClientUser{
		ClientID:     user.ClientID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert client user: %w", err)
	}
	return r.FindByUsername(ctx, user.Username)
}

func (r *ClientUserRepository) FindByUsername(ctx context.Context, username string) (*domain.ClientUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoClientUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find client user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique username index.
func (r *ClientUserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
