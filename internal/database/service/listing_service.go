package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/repository"
)

// ListingService defines the interface for listing business logic. Reads are
// public; create, update, and delete are owner-scoped.
type ListingService interface {
	Create(ctx context.Context, ownerID string, listing *models.Listing) (*models.Listing, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	Update(ctx context.Context, ownerID, id string, patch *ListingPatch) (*models.Listing, error)
	Delete(ctx context.Context, ownerID, id string) error
	Search(ctx context.Context, query repository.ListingQuery) ([]models.Listing, error)
}

// ListingPatch holds the optional fields of a listing update request. Nil
// fields are left unchanged; the merged document is re-validated before it
// is persisted.
type ListingPatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Address       *string  `json:"address"`
	RegularPrice  *float64 `json:"regularPrice"`
	DiscountPrice *float64 `json:"discountPrice"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Furnished     *bool    `json:"furnished"`
	Parking       *bool    `json:"parking"`
	Type          *string  `json:"type"`
	Offer         *bool    `json:"offer"`
	ImageURLs     []string `json:"imageUrls"`
}

// ErrListingNotFound is the service-level missing-listing error.
var ErrListingNotFound = errors.New("listing not found")

type listingService struct {
	listingRepo repository.ListingRepository
	logger      *slog.Logger
}

// NewListingService creates a new listing service instance
func NewListingService(listingRepo repository.ListingRepository, logger *slog.Logger) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		logger:      logger,
	}
}

func (s *listingService) Create(ctx context.Context, ownerID string, listing *models.Listing) (*models.Listing, error) {
	// The owner is taken from the verified identity, never from the payload.
	listing.UserRef = ownerID

	if verr := validateListing(listing); verr != nil {
		return nil, verr
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.logger.Error("❌ [ListingService] Failed to create listing", "owner_id", ownerID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing created", "listing_id", listing.ID.Hex(), "owner_id", ownerID)
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Update(ctx context.Context, ownerID, id string, patch *ListingPatch) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	if listing.UserRef != ownerID {
		s.logger.Warn("⚠️ [ListingService] Update rejected, not the listing owner",
			"listing_id", id, "caller_id", ownerID)
		return nil, ErrNotOwner
	}

	applyListingPatch(listing, patch)

	if verr := validateListing(listing); verr != nil {
		return nil, verr
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			// Deleted between the ownership check and the write.
			return nil, ErrListingNotFound
		}
		s.logger.Error("❌ [ListingService] Failed to update listing", "listing_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [ListingService] Listing updated", "listing_id", id)
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, ownerID, id string) error {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	if listing.UserRef != ownerID {
		s.logger.Warn("⚠️ [ListingService] Delete rejected, not the listing owner",
			"listing_id", id, "caller_id", ownerID)
		return ErrNotOwner
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return ErrListingNotFound
		}
		s.logger.Error("❌ [ListingService] Failed to delete listing", "listing_id", id, "error", err)
		return err
	}

	s.logger.Info("✅ [ListingService] Listing deleted", "listing_id", id)
	return nil
}

func (s *listingService) Search(ctx context.Context, query repository.ListingQuery) ([]models.Listing, error) {
	return s.listingRepo.Search(ctx, query)
}

func applyListingPatch(listing *models.Listing, patch *ListingPatch) {
	if patch.Name != nil {
		listing.Name = *patch.Name
	}
	if patch.Description != nil {
		listing.Description = *patch.Description
	}
	if patch.Address != nil {
		listing.Address = *patch.Address
	}
	if patch.RegularPrice != nil {
		listing.RegularPrice = *patch.RegularPrice
	}
	if patch.DiscountPrice != nil {
		listing.DiscountPrice = *patch.DiscountPrice
	}
	if patch.Bedrooms != nil {
		listing.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		listing.Bathrooms = *patch.Bathrooms
	}
	if patch.Furnished != nil {
		listing.Furnished = *patch.Furnished
	}
	if patch.Parking != nil {
		listing.Parking = *patch.Parking
	}
	if patch.Type != nil {
		listing.Type = *patch.Type
	}
	if patch.Offer != nil {
		listing.Offer = *patch.Offer
	}
	if patch.ImageURLs != nil {
		listing.ImageURLs = patch.ImageURLs
	}
}
