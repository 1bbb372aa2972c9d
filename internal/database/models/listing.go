package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing types.
const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

// Listing represents a property listing. UserRef holds the hex id of the
// owning user; only that user may update or delete the listing.
type Listing struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Address       string             `bson:"address" json:"address"`
	RegularPrice  float64            `bson:"regularPrice" json:"regularPrice"`
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	Bedrooms      int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms" json:"bathrooms"`
	Furnished     bool               `bson:"furnished" json:"furnished"`
	Parking       bool               `bson:"parking" json:"parking"`
	Type          string             `bson:"type" json:"type"`
	Offer         bool               `bson:"offer" json:"offer"`
	ImageURLs     []string           `bson:"imageUrls" json:"imageUrls"`
	UserRef       string             `bson:"userRef" json:"userRef"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
