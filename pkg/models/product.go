package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product represents a storefront product document. Products are created by
// sellers through the ingestion endpoint and are read-only afterwards.
type Product struct {
	ID          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      string        `json:"userId" bson:"userId" validate:"required"`
	Name        string        `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Description string        `json:"description" bson:"description" validate:"required,max=2000"`
	Category    string        `json:"category" bson:"category" validate:"required,min=2,max=100"`
	Price       float64       `json:"price" bson:"price" validate:"required,gt=0"`
	OfferPrice  float64       `json:"offerPrice" bson:"offerPrice" validate:"required,gt=0"`
	Image       []string      `json:"image" bson:"image" validate:"required,min=1,dive,url"`
	Date        int64         `json:"date" bson:"date"` // milliseconds since epoch
}

// NewProductRequest carries the multipart form fields of the ingestion
// endpoint; image URLs and timestamps are assigned by the server.
type NewProductRequest struct {
	Name        string
	Description string
	Category    string
	Price       float64
	OfferPrice  float64
}

func (req *NewProductRequest) ToProduct(userID string, imageURLs []string) *Product {
	return &Product{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		Image:       imageURLs,
		Date:        time.Now().UnixMilli(),
	}
}
