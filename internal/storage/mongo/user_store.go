package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interviai/backend/internal/model/user"
)

// Connect opens a client and verifies the server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// UserStore implements user.Store on a Mongo collection.
type UserStore struct {
	users *mongo.Collection
}

// NewUserStore binds to the users collection and ensures the unique email
// index.
func NewUserStore(ctx context.Context, client *mongo.Client, dbName string) (*UserStore, error) {
	users := client.Database(dbName).Collection("users")

	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure email index: %w", err)
	}

	return &UserStore{users: users}, nil
}

// Create inserts a user, assigning an ID.
func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return user.User{}, user.ErrEmailRequired
	}

	u.ID = uuid.NewString()
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// FindByEmail looks up a user by email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u user.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

// FindByID looks up a user by identifier.
func (s *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

// Update replaces the stored record for u.ID.
func (s *UserStore) Update(ctx context.Context, u user.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	result, err := s.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}
