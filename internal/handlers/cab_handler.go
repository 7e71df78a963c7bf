package handlers

import (
	"context"
	"fmt"
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

// AddCabService creates a standing cab service listing (not a ride booking)
// in the rides collection.
func (h *Handler) AddCabService(c *gin.Context) {
	pickup := c.PostForm("pickup")
	drop := c.PostForm("drop")
	fareStr := c.PostForm("fare")
	if pickup == "" || drop == "" || fareStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "pickup, drop and fare are required"})
		return
	}
	fare, err := strconv.ParseFloat(fareStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid fare"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = fmt.Sprintf("%s to %s", pickup, drop)
	}
	description := c.PostForm("description")
	if description == "" {
		description = fmt.Sprintf("Cab service from %s to %s", pickup, drop)
	}
	vehicleType := c.PostForm("vehicleType")
	if vehicleType == "" {
		vehicleType = "cab"
	}

	files := readFormFiles(c, "images")
	images, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "cabs")
	if len(failed) > 0 {
		log.Printf("AddCabService: %d of %d image uploads failed", len(failed), len(files))
	}
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	ride := models.Ride{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		Pickup:      pickup,
		Drop:        drop,
		Fare:        fare,
		VehicleType: vehicleType,
		Status:      models.BookingConfirmed,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if v, err := strconv.ParseFloat(c.PostForm("distance"), 64); err == nil {
		ride.Distance = v
	}
	if providerHex := c.PostForm("provider"); providerHex != "" {
		if providerID, err := primitive.ObjectIDFromHex(providerHex); err == nil {
			ride.Provider = &providerID
		}
	}

	if _, err := h.DB.Collection("rides").InsertOne(context.TODO(), ride); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create cab service"})
		return
	}

	if ride.Provider != nil {
		ref := models.ServiceRef{Kind: models.ServiceKindRide, ID: ride.ID}
		if err := h.linkServiceToProvider(context.TODO(), *ride.Provider, ref); err != nil {
			log.Printf("Failed to link cab service %s to provider: %v", ride.ID.Hex(), err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "ride": ride})
}

func (h *Handler) GetCabServices(c *gin.Context) {
	filter := bson.M{}
	if providerHex := c.Query("providerId"); providerHex != "" {
		if providerID, err := primitive.ObjectIDFromHex(providerHex); err == nil {
			filter["provider"] = providerID
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("rides").Find(context.TODO(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cab services"})
		return
	}
	defer cursor.Close(context.TODO())

	var rides []models.Ride
	if err := cursor.All(context.TODO(), &rides); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode cab services"})
		return
	}
	if rides == nil {
		rides = []models.Ride{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rides": rides})
}

func (h *Handler) GetCabServiceByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cab service ID"})
		return
	}

	var ride models.Ride
	if err := h.DB.Collection("rides").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&ride); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cab service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ride": ride})
}

func (h *Handler) UpdateCabService(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cab service ID"})
		return
	}

	existing := parseExistingImages(c.PostForm("existingImages"))
	files := readFormFiles(c, "images")
	uploaded, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "cabs")
	if len(failed) > 0 {
		log.Printf("UpdateCabService: %d of %d image uploads failed", len(failed), len(files))
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
	if v := c.PostForm("pickup"); v != "" {
		update["pickup"] = v
	}
	if v := c.PostForm("drop"); v != "" {
		update["drop"] = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("fare"), 64); err == nil {
		update["fare"] = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("distance"), 64); err == nil {
		update["distance"] = v
	}
	if v := c.PostForm("vehicleType"); v != "" {
		update["vehicleType"] = v
	}

	result := h.DB.Collection("rides").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var ride models.Ride
	if err := result.Decode(&ride); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cab service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ride": ride})
}

func (h *Handler) DeleteCabService(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cab service ID"})
		return
	}

	var ride models.Ride
	if err := h.DB.Collection("rides").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&ride); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cab service not found"})
		return
	}

	if ride.Provider != nil {
		ref := models.ServiceRef{Kind: models.ServiceKindRide, ID: ride.ID}
		if err := h.unlinkServiceFromProvider(context.TODO(), *ride.Provider, ref); err != nil {
			log.Printf("Failed to unlink cab service %s from provider: %v", ride.ID.Hex(), err)
		}
	}

	if _, err := h.DB.Collection("rides").DeleteOne(context.TODO(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete cab service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cab service deleted successfully"})
}
