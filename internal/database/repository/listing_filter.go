package repository

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mertdogan/estately/internal/database/models"
)

// DefaultSearchLimit is the page size used when the limit parameter is
// absent or unparseable.
const DefaultSearchLimit = 9

// ListingQuery is a persistence-layer search specification: a MongoDB filter
// plus sort and pagination options.
type ListingQuery struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
	Skip   int64
}

// BuildListingQuery translates listing search parameters into a ListingQuery.
//
// The boolean filters (offer, furnished, parking) are tri-state: a value that
// is absent or the literal "false" matches both true and false, i.e. it does
// not filter at all. Only the literal "true" filters to exact true. An
// explicit "false" is therefore indistinguishable from an unspecified
// parameter. This is intentional; do not change it to conventional boolean
// filtering.
func BuildListingQuery(params url.Values) ListingQuery {
	filter := bson.M{
		"name":      caseInsensitiveMatch(params.Get("searchTerm")),
		"offer":     triStateBool(params.Get("offer")),
		"furnished": triStateBool(params.Get("furnished")),
		"parking":   triStateBool(params.Get("parking")),
		"type":      listingType(params.Get("type")),
	}

	sortField := params.Get("sort")
	if sortField == "" {
		sortField = "createdAt"
	}
	sortDir := -1
	if params.Get("order") == "asc" {
		sortDir = 1
	}

	return ListingQuery{
		Filter: filter,
		Sort:   bson.D{{Key: sortField, Value: sortDir}},
		Limit:  parseLimit(params.Get("limit")),
		Skip:   parseSkip(params.Get("startIndex")),
	}
}

// caseInsensitiveMatch builds a substring match on the listing name. An
// empty search term matches every listing.
func caseInsensitiveMatch(searchTerm string) primitive.Regex {
	return primitive.Regex{
		Pattern: regexp.QuoteMeta(searchTerm),
		Options: "i",
	}
}

// triStateBool maps a boolean query parameter to its filter value. Absent or
// "false" wildcards across both values; anything else compares against the
// exact boolean the parameter parses to.
func triStateBool(value string) interface{} {
	if value == "" || value == "false" {
		return bson.M{"$in": bson.A{false, true}}
	}
	return value == "true"
}

// listingType maps the type parameter: absent or "all" matches both sale and
// rent, anything else matches exactly.
func listingType(value string) interface{} {
	if value == "" || value == "all" {
		return bson.M{"$in": bson.A{models.ListingTypeSale, models.ListingTypeRent}}
	}
	return value
}

// parseLimit treats zero and negative values as invalid: a zero limit would
// mean "unlimited" to the store, which no caller ever intends.
func parseLimit(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return DefaultSearchLimit
	}
	return n
}

func parseSkip(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
