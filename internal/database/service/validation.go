package service

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/mertdogan/estately/internal/database/models"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func validateUsername(username string) *ValidationError {
	if username == "" {
		return invalid("username", "Username is required")
	}
	return nil
}

func validateEmail(email string) *ValidationError {
	if !emailPattern.MatchString(email) {
		return invalid("email", "Invalid Email")
	}
	return nil
}

func validatePassword(password string) *ValidationError {
	if len(password) < MinPasswordLength {
		return invalid("password",
			fmt.Sprintf("Your password needs to be at least %d characters long.", MinPasswordLength))
	}
	return nil
}

// validateListing checks the full listing schema in declaration order and
// stops at the first violation.
func validateListing(listing *models.Listing) *ValidationError {
	if listing.Name == "" {
		return invalid("name", "Name is required")
	}
	if listing.Description == "" {
		return invalid("description", "Description is required")
	}
	if listing.Address == "" {
		return invalid("address", "Address is required")
	}
	if listing.RegularPrice < 0 {
		return invalid("regularPrice", "Regular price must be a positive number")
	}
	if listing.DiscountPrice < 0 {
		return invalid("discountPrice", "Discount price must be a positive number")
	}
	if listing.Bathrooms < 0 {
		return invalid("bathrooms", "Number of bathrooms must be a positive number")
	}
	if listing.Bedrooms < 0 {
		return invalid("bedrooms", "Number of bedrooms must be a positive number")
	}
	if listing.Type != models.ListingTypeSale && listing.Type != models.ListingTypeRent {
		return invalid("type", "Type must be either sale or rent")
	}
	if len(listing.ImageURLs) == 0 {
		return invalid("imageUrls", "At least one image URL is required")
	}
	for _, raw := range listing.ImageURLs {
		if !isValidURL(raw) {
			return invalid("imageUrls", "Each image URL must be a valid URL")
		}
	}
	return nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
