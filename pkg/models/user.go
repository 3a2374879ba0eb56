package models

import "errors"

// ErrUserNotFound is returned when no user document exists for an id.
var ErrUserNotFound = errors.New("user not found")

// CartItems maps a product id to the desired purchase quantity.
// A quantity of zero is never stored; the entry is removed instead.
type CartItems map[string]int

// Sanitized returns a copy with all non-positive quantities removed,
// restoring the cart invariant on payloads received from clients.
func (c CartItems) Sanitized() CartItems {
	clean := make(CartItems, len(c))
	for id, qty := range c {
		if qty > 0 {
			clean[id] = qty
		}
	}
	return clean
}

// PublicMetadata mirrors the role metadata attached by the identity
// provider. The "seller" role grants access to product ingestion.
type PublicMetadata struct {
	Role string `json:"role" bson:"role"`
}

// User represents a storefront user document. The _id is the identity
// provider's user id, not a Mongo ObjectID.
type User struct {
	ID             string         `json:"_id" bson:"_id"`
	Name           string         `json:"name" bson:"name"`
	Email          string         `json:"email" bson:"email"`
	ImageURL       string         `json:"imageUrl" bson:"imageUrl"`
	CartItems      CartItems      `json:"cartItems" bson:"cartItems"`
	PublicMetadata PublicMetadata `json:"publicMetadata" bson:"publicMetadata"`
}

func (u *User) IsSeller() bool {
	return u.PublicMetadata.Role == "seller"
}
