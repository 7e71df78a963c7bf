package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHotelFilterEmptyParams(t *testing.T) {
	assert.Equal(t, bson.M{}, hotelFilter(HotelListParams{}))
}

func TestHotelFilterProviderID(t *testing.T) {
	id := primitive.NewObjectID()
	filter := hotelFilter(HotelListParams{ProviderID: id.Hex()})
	assert.Equal(t, id, filter["provider"])

	// A malformed hex is skipped rather than matching nothing.
	filter = hotelFilter(HotelListParams{ProviderID: "nope"})
	assert.NotContains(t, filter, "provider")
}

func TestHotelFilterLocationRegex(t *testing.T) {
	filter := hotelFilter(HotelListParams{Location: "goa"})
	assert.Equal(t, bson.M{"$regex": "goa", "$options": "i"}, filter["location"])
}

func TestHotelFilterPriceRange(t *testing.T) {
	filter := hotelFilter(HotelListParams{MinPrice: "500", MaxPrice: "2000"})
	assert.Equal(t, bson.M{"$gte": 500.0, "$lte": 2000.0}, filter["price"])

	filter = hotelFilter(HotelListParams{MinPrice: "500"})
	assert.Equal(t, bson.M{"$gte": 500.0}, filter["price"])

	filter = hotelFilter(HotelListParams{MaxPrice: "2000"})
	assert.Equal(t, bson.M{"$lte": 2000.0}, filter["price"])

	// Unparseable bounds are dropped entirely.
	filter = hotelFilter(HotelListParams{MinPrice: "cheap"})
	assert.NotContains(t, filter, "price")
}

func TestHotelFilterCapacityAndRating(t *testing.T) {
	filter := hotelFilter(HotelListParams{Capacity: "4", Rating: "3.5"})
	assert.Equal(t, bson.M{"$gte": 4}, filter["capacity"])
	assert.Equal(t, bson.M{"$gte": 3.5}, filter["rating"])
}

func TestHotelFilterAmenities(t *testing.T) {
	filter := hotelFilter(HotelListParams{Amenities: "wifi, pool ,parking"})
	assert.Equal(t, bson.M{"$all": []string{"wifi", "pool", "parking"}}, filter["amenities"])

	filter = hotelFilter(HotelListParams{Amenities: " , "})
	assert.NotContains(t, filter, "amenities")
}

func TestHotelSortAllowList(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, hotelSort("price", "asc"))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, hotelSort("price", "desc"))
	assert.Equal(t, bson.D{{Key: "rating", Value: -1}}, hotelSort("rating", ""))
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, hotelSort("name", "asc"))
}

func TestHotelSortRejectsUnknownFields(t *testing.T) {
	newestFirst := bson.D{{Key: "createdAt", Value: -1}}
	assert.Equal(t, newestFirst, hotelSort("", ""))
	assert.Equal(t, newestFirst, hotelSort("password", "asc"))
	assert.Equal(t, newestFirst, hotelSort("$where", "desc"))
}

func TestParseExistingImages(t *testing.T) {
	urls := parseExistingImages(`["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", urls[0])

	assert.Equal(t, []string{}, parseExistingImages(""))
	assert.Equal(t, []string{}, parseExistingImages("not json"))
	assert.Equal(t, []string{}, parseExistingImages(`{"a":1}`))
}
