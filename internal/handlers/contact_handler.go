package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servihub/marketplace-api/internal/models"
)

func (h *Handler) CreateContact(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName"`
		Email     string `json:"email" binding:"required,email"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}

	contact := models.Contact{
		ID:        primitive.NewObjectID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	if _, err := h.DB.Collection("contacts").InsertOne(context.TODO(), contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "contact": contact})
}

func (h *Handler) GetContacts(c *gin.Context) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("contacts").Find(context.TODO(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch messages"})
		return
	}
	defer cursor.Close(context.TODO())

	var contacts []models.Contact
	if err := cursor.All(context.TODO(), &contacts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode messages"})
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": contacts})
}
