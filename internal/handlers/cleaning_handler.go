package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servihub/marketplace-api/internal/models"
	"github.com/servihub/marketplace-api/internal/services"
)

// AddCleaning creates a cleaning service listing.
func (h *Handler) AddCleaning(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")
	category := c.PostForm("category")
	duration := c.PostForm("duration")
	if name == "" || description == "" || priceStr == "" || category == "" || duration == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name, description, price, category and duration are required"})
		return
	}
	if !models.ValidCleaningCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	files := readFormFiles(c, "images")
	images, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "cleaning")
	if len(failed) > 0 {
		log.Printf("AddCleaning: %d of %d image uploads failed", len(failed), len(files))
	}
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	cleaning := models.Cleaning{
		ID:               primitive.NewObjectID(),
		Name:             name,
		Description:      description,
		Price:            price,
		Category:         category,
		Duration:         duration,
		SuppliesIncluded: c.PostForm("suppliesIncluded") == "true",
		Images:           images,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if providerHex := c.PostForm("provider"); providerHex != "" {
		if providerID, err := primitive.ObjectIDFromHex(providerHex); err == nil {
			cleaning.Provider = &providerID
		}
	}

	if _, err := h.DB.Collection("cleanings").InsertOne(context.TODO(), cleaning); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create cleaning service"})
		return
	}

	if cleaning.Provider != nil {
		ref := models.ServiceRef{Kind: models.ServiceKindCleaning, ID: cleaning.ID}
		if err := h.linkServiceToProvider(context.TODO(), *cleaning.Provider, ref); err != nil {
			log.Printf("Failed to link cleaning %s to provider: %v", cleaning.ID.Hex(), err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "cleaning": cleaning})
}

func (h *Handler) GetCleanings(c *gin.Context) {
	filter := bson.M{}
	if providerHex := c.Query("providerId"); providerHex != "" {
		if providerID, err := primitive.ObjectIDFromHex(providerHex); err == nil {
			filter["provider"] = providerID
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("cleanings").Find(context.TODO(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cleaning services"})
		return
	}
	defer cursor.Close(context.TODO())

	var cleanings []models.Cleaning
	if err := cursor.All(context.TODO(), &cleanings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode cleaning services"})
		return
	}
	if cleanings == nil {
		cleanings = []models.Cleaning{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cleanings": cleanings})
}

func (h *Handler) GetCleaningByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cleaning ID"})
		return
	}

	var cleaning models.Cleaning
	if err := h.DB.Collection("cleanings").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&cleaning); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cleaning service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cleaning": cleaning})
}

func (h *Handler) UpdateCleaning(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cleaning ID"})
		return
	}

	existing := parseExistingImages(c.PostForm("existingImages"))
	files := readFormFiles(c, "images")
	uploaded, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "cleaning")
	if len(failed) > 0 {
		log.Printf("UpdateCleaning: %d of %d image uploads failed", len(failed), len(files))
	}

	update := bson.M{
		"images":    append(existing, uploaded...),
		"updatedAt": time.Now(),
	}
	if v := c.PostForm("name"); v != "" {
		update["name"] = v
	}
	if v := c.PostForm("description"); v != "" {
		update["description"] = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("price"), 64); err == nil {
		update["price"] = v
	}
	if v := c.PostForm("duration"); v != "" {
		update["duration"] = v
	}
	if v := c.PostForm("category"); v != "" {
		if !models.ValidCleaningCategory(v) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
			return
		}
		update["category"] = v
	}
	if v := c.PostForm("suppliesIncluded"); v != "" {
		update["suppliesIncluded"] = v == "true"
	}

	result := h.DB.Collection("cleanings").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var cleaning models.Cleaning
	if err := result.Decode(&cleaning); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cleaning service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cleaning": cleaning})
}

func (h *Handler) DeleteCleaning(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cleaning ID"})
		return
	}

	var cleaning models.Cleaning
	if err := h.DB.Collection("cleanings").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&cleaning); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cleaning service not found"})
		return
	}

	if cleaning.Provider != nil {
		ref := models.ServiceRef{Kind: models.ServiceKindCleaning, ID: cleaning.ID}
		if err := h.unlinkServiceFromProvider(context.TODO(), *cleaning.Provider, ref); err != nil {
			log.Printf("Failed to unlink cleaning %s from provider: %v", cleaning.ID.Hex(), err)
		}
	}

	if _, err := h.DB.Collection("cleanings").DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete cleaning service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cleaning service deleted"})
}
