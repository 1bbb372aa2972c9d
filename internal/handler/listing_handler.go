package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/repository"
	"github.com/mertdogan/estately/internal/database/service"
	"github.com/mertdogan/estately/internal/middleware"
)

// ListingHandler handles HTTP requests for property listings
type ListingHandler struct {
	service service.ListingService
	logger  *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(service service.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		logger:  logger,
	}
}

// CreateListingRequest carries the listing schema fields. The owner is taken
// from the verified identity, never from the payload.
type CreateListingRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	RegularPrice  float64  `json:"regularPrice"`
	DiscountPrice float64  `json:"discountPrice"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Furnished     bool     `json:"furnished"`
	Parking       bool     `json:"parking"`
	Type          string   `json:"type"`
	Offer         bool     `json:"offer"`
	ImageURLs     []string `json:"imageUrls"`
}

// Create handles POST /api/listing/create
func (h *ListingHandler) Create(c *gin.Context) {
	callerID := c.GetString(middleware.UserIDKey)

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, StatusValidationFailed, "Invalid request body")
		return
	}

	listing := &models.Listing{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Furnished:     req.Furnished,
		Parking:       req.Parking,
		Type:          req.Type,
		Offer:         req.Offer,
		ImageURLs:     req.ImageURLs,
	}

	created, err := h.service.Create(c.Request.Context(), callerID, listing)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/listing/get/:id
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Search handles GET /api/listing/get
func (h *ListingHandler) Search(c *gin.Context) {
	query := repository.BuildListingQuery(c.Request.URL.Query())

	listings, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

// Update handles POST /api/listing/update/:id
func (h *ListingHandler) Update(c *gin.Context) {
	callerID := c.GetString(middleware.UserIDKey)

	var patch service.ListingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, StatusValidationFailed, "Invalid request body")
		return
	}

	listing, err := h.service.Update(c.Request.Context(), callerID, c.Param("id"), &patch)
	if err != nil {
		handleServiceError(c, h.logger, err, "You can only update your own listings!")
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /api/listing/delete/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	callerID := c.GetString(middleware.UserIDKey)

	if err := h.service.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		handleServiceError(c, h.logger, err, "You can only delete your own listings!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing has been deleted!"})
}
