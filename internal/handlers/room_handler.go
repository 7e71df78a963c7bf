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

// GetHotelRooms lists the rooms of a hotel.
func (h *Handler) GetHotelRooms(c *gin.Context) {
	hotelID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid hotel ID"})
		return
	}

	cursor, err := h.DB.Collection("rooms").Find(context.TODO(), bson.M{"hotelId": hotelID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch rooms"})
		return
	}
	defer cursor.Close(context.TODO())

	var rooms []models.Room
	if err := cursor.All(context.TODO(), &rooms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode rooms"})
		return
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
}

// AddHotelRoom creates a room under a hotel.
func (h *Handler) AddHotelRoom(c *gin.Context) {
	hotelID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid hotel ID"})
		return
	}

	// The hotel must exist before a room can hang off it.
	if err := h.DB.Collection("hotels").FindOne(context.TODO(), bson.M{"_id": hotelID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hotel not found"})
		return
	}

	roomType := c.PostForm("roomType")
	priceStr := c.PostForm("price")
	if roomType == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "roomType and price are required"})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	capacity := 0
	if v, err := strconv.Atoi(c.PostForm("capacity")); err == nil {
		capacity = v
	}
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
	images, failed := services.UploadAll(c.Request.Context(), h.Uploader, files, "rooms")
	if len(failed) > 0 {
		log.Printf("AddHotelRoom: %d of %d image uploads failed", len(failed), len(files))
	}
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	room := models.Room{
		ID:        primitive.NewObjectID(),
		HotelID:   hotelID,
		RoomType:  roomType,
		Price:     price,
		Capacity:  capacity,
		Amenities: amenities,
		Available: true,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := h.DB.Collection("rooms").InsertOne(context.TODO(), room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "room": room})
}

// UpdateHotelRoom edits a room's price, availability or type.
func (h *Handler) UpdateHotelRoom(c *gin.Context) {
	roomID, err := primitive.ObjectIDFromHex(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid room ID"})
		return
	}

	var req struct {
		RoomType  string   `json:"roomType"`
		Price     *float64 `json:"price"`
		Capacity  *int     `json:"capacity"`
		Available *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.RoomType != "" {
		update["roomType"] = req.RoomType
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Capacity != nil {
		update["capacity"] = *req.Capacity
	}
	if req.Available != nil {
		update["available"] = *req.Available
	}

	result := h.DB.Collection("rooms").FindOneAndUpdate(context.TODO(),
		bson.M{"_id": roomID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var room models.Room
	if err := result.Decode(&room); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}

func (h *Handler) DeleteHotelRoom(c *gin.Context) {
	roomID, err := primitive.ObjectIDFromHex(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid room ID"})
		return
	}

	result, err := h.DB.Collection("rooms").DeleteOne(context.TODO(), bson.M{"_id": roomID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete room"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted successfully"})
}
