package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
)

const usersCollection = "users"

// UserStore persists user documents keyed by the identity provider's user id.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Get(ctx context.Context, userID string) (*models.User, error) {
	collection := s.db.Collection(usersCollection)

	var user models.User
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	return &user, nil
}

// IsSeller reports whether the user carries the seller role. A missing
// user document is not an error here, just a denied check.
func (s *UserStore) IsSeller(ctx context.Context, userID string) (bool, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsSeller(), nil
}

// ReplaceCart overwrites the user's persisted cart wholesale.
func (s *UserStore) ReplaceCart(ctx context.Context, userID string, cart models.CartItems) error {
	collection := s.db.Collection(usersCollection)

	result, err := collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "cartItems", Value: cart}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to update cart for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}

	return nil
}
