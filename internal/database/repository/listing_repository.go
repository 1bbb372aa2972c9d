package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mertdogan/estately/internal/database"
	"github.com/mertdogan/estately/internal/database/models"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	FindByOwner(ctx context.Context, userRef string) ([]models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query ListingQuery) ([]models.Listing, error)
}

// ErrListingNotFound is returned when a listing does not exist.
var ErrListingNotFound = errors.New("listing not found")

type listingRepository struct {
	coll *mongo.Collection
}

// NewListingRepository creates a new listing repository instance
func NewListingRepository(db *mongo.Database) ListingRepository {
	return &listingRepository{coll: db.Collection(database.ListingsCollection)}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}

	_, err := r.coll.InsertOne(ctx, listing)
	return err
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrListingNotFound
	}

	var listing models.Listing
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindByOwner(ctx context.Context, userRef string) ([]models.Listing, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userRef": userRef},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	listing.UpdatedAt = time.Now().UTC()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": listing.ID}, listing)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// The listing vanished between the ownership check and the write.
		return ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrListingNotFound
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) Search(ctx context.Context, query ListingQuery) ([]models.Listing, error) {
	opts := options.Find().
		SetSort(query.Sort).
		SetLimit(query.Limit).
		SetSkip(query.Skip)

	cursor, err := r.coll.Find(ctx, query.Filter, opts)
	if err != nil {
		return nil, err
	}

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
