package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/services"
)

// HotelListParams are the supported hotel search filters and sort options.
type HotelListParams struct {
	ProviderID string
	Location   string
	MinPrice   string
	MaxPrice   string
	Capacity   string
	Amenities  string
	Rating     string
	SortBy     string
	SortOrder  string
}

// hotelFilter builds the Mongo filter document from search params.
func hotelFilter(p HotelListParams) bson.M {
	filter := bson.M{}

	if p.ProviderID != "" {
		if id, err := primitive.ObjectIDFromHex(p.ProviderID); err == nil {
			filter["provider"] = id
		}
	}
	if p.Location != "" {
		filter["location"] = bson.M{"$regex": p.Location, "$options": "i"}
	}
	if p.MinPrice != "" || p.MaxPrice != "" {
		price := bson.M{}
		if v, err := strconv.ParseFloat(p.MinPrice, 64); err == nil {
			price["$gte"] = v
		}
		if v, err := strconv.ParseFloat(p.MaxPrice, 64); err == nil {
			price["$lte"] = v
		}
		if len(price) > 0 {
			filter["price"] = price
		}
	}
	if v, err := strconv.Atoi(p.Capacity); err == nil {
		filter["capacity"] = bson.M{"$gte": v}
	}
	if p.Amenities != "" {
		var amenities []string
		for _, a := range strings.Split(p.Amenities, ",") {
			if a = strings.TrimSpace(a); a != "" {
				amenities = append(amenities, a)
			}
		}
		if len(amenities) > 0 {
			filter["amenities"] = bson.M{"$all": amenities}
		}
	}
	if v, err := strconv.ParseFloat(p.Rating, 64); err == nil {
		filter["rating"] = bson.M{"$gte": v}
	}

	return filter
}

// hotelSort maps the client sort request onto the allow-list {price, rating,
// name}; anything else falls back to newest-first.
func hotelSort(sortBy, sortOrder string) bson.D {
	direction := -1
	if sortOrder == "asc" {
		direction = 1
	}
	switch sortBy {
	case "price", "rating", "name":
		return bson.D{{Key: sortBy, Value: direction}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// AddHotel creates a hotel listing from a multipart form, uploading submitted
// images best-effort and linking the listing into its provider.
func (h *Handler) AddHotel(c *gin.Context) {
	name := c.PostForm("name")
	location := c.PostForm("location")
	priceStr := c.PostForm("price")
	if name == "" || location == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name, location and price are required"})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	capacity := 2
	if v, err := strconv.Atoi(c.PostForm("capacity")); err == nil {
		capacity = v
	}
	outsideFood := c.PostForm("outsideFoodAllowed")

	var amenities []string
	for _, a := range strings.Split(c.PostForm("amenities"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}
	if amenities == nil {
		amenities = []string{}
	}

	files := readFormFiles(c, "images")
	images, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "hotels")
	if len(failed) > 0 {
		log.Printf("AddHotel: %d of %d image uploads failed", len(failed), len(files))
	}
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	hotel := models.Hotel{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		Location:           location,
		Price:              price,
		Capacity:           capacity,
		OutsideFoodAllowed: outsideFood == "true" || outsideFood == "on",
		Description:        c.PostForm("description"),
		Amenities:          amenities,
		Images:             images,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if providerHex := c.PostForm("provider"); providerHex != "" {
		if providerID, err := primitive.ObjectIDFromHex(providerHex); err == nil {
			hotel.Provider = &providerID
		}
	}

	if _, err := h.DB.Collection("hotels").InsertOne(context.TODO(), hotel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create hotel"})
		return
	}

	if hotel.Provider != nil {
		ref := models.ServiceRef{Kind: models.ServiceKindHotel, ID: hotel.ID}
		if err := h.linkServiceToProvider(context.TODO(), *hotel.Provider, ref); err != nil {
			log.Printf("Failed to link hotel %s to provider: %v", hotel.ID.Hex(), err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "hotel": hotel})
}

// GetHotels lists hotels with search filters and an allow-listed sort.
func (h *Handler) GetHotels(c *gin.Context) {
	params := HotelListParams{
		ProviderID: c.Query("providerId"),
		Location:   c.Query("location"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
		Capacity:   c.Query("capacity"),
		Amenities:  c.Query("amenities"),
		Rating:     c.Query("rating"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	findOptions := options.Find().SetSort(hotelSort(params.SortBy, params.SortOrder))
	cursor, err := h.DB.Collection("hotels").Find(context.TODO(), hotelFilter(params), findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch hotels"})
		return
	}
	defer cursor.Close(context.TODO())

	var hotels []models.Hotel
	if err := cursor.All(context.TODO(), &hotels); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode hotels"})
		return
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(hotels), "hotels": hotels})
}

func (h *Handler) GetHotelByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid hotel ID"})
		return
	}

	var hotel models.Hotel
	if err := h.DB.Collection("hotels").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&hotel); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hotel not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hotel": hotel})
}

// UpdateHotel merges the retained image URLs the client sends with any newly
// uploaded ones; stored assets no longer referenced are not deleted remotely.
func (h *Handler) UpdateHotel(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid hotel ID"})
		return
	}

	existing := parseExistingImages(c.PostForm("existingImages"))
	files := readFormFiles(c, "images")
	uploaded, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "hotels")
	if len(failed) > 0 {
		log.Printf("UpdateHotel: %d of %d image uploads failed", len(failed), len(files))
	}

	update := bson.M{
		"images":    append(existing, uploaded...),
		"updatedAt": time.Now(),
	}
	if v := c.PostForm("name"); v != "" {
		update["name"] = v
	}
	if v := c.PostForm("location"); v != "" {
		update["location"] = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("price"), 64); err == nil {
		update["price"] = v
	}
	if v, err := strconv.Atoi(c.PostForm("capacity")); err == nil {
		update["capacity"] = v
	}
	if v := c.PostForm("outsideFoodAllowed"); v != "" {
		update["outsideFoodAllowed"] = v == "true" || v == "on"
	}
	if v := c.PostForm("description"); v != "" {
		update["description"] = v
	}
	if v := c.PostForm("amenities"); v != "" {
		var amenities []string
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				amenities = append(amenities, a)
			}
		}
		update["amenities"] = amenities
	}

	result := h.DB.Collection("hotels").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var hotel models.Hotel
	if err := result.Decode(&hotel); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hotel not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hotel": hotel})
}

// DeleteHotel removes the listing and pulls its reference from the owning
// provider's services list.
func (h *Handler) DeleteHotel(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid hotel ID"})
		return
	}

	var hotel models.Hotel
	if err := h.DB.Collection("hotels").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&hotel); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hotel not found"})
		return
	}

	if hotel.Provider != nil {
		ref := models.ServiceRef{Kind: models.ServiceKindHotel, ID: hotel.ID}
		if err := h.unlinkServiceFromProvider(context.TODO(), *hotel.Provider, ref); err != nil {
			log.Printf("Failed to unlink hotel %s from provider: %v", hotel.ID.Hex(), err)
		}
	}

	if _, err := h.DB.Collection("hotels").DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete hotel"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Hotel deleted successfully"})
}
