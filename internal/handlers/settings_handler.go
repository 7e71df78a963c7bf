package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servihub/marketplace-api/internal/models"
)

// GetSettings returns the global settings document, creating it with
// defaults on first read.
func (h *Handler) GetSettings(c *gin.Context) {
	settingsCol := h.DB.Collection("settings")

	var settings models.Settings
	err := settingsCol.FindOne(context.TODO(), bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DefaultSettings()
		settings.ID = primitive.NewObjectID()
		if _, err := settingsCol.InsertOne(context.TODO(), settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create settings"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

// UpdateSettings applies submitted fields onto the singleton, creating it if
// absent. Superadmin only (enforced at the route).
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req struct {
		SiteName                 *string `json:"siteName"`
		SiteEmail                *string `json:"siteEmail"`
		MaintenanceMode          *bool   `json:"maintenanceMode"`
		AllowRegistrations       *bool   `json:"allowRegistrations"`
		RequireEmailVerification *bool   `json:"requireEmailVerification"`
		MaxFileSize              *int    `json:"maxFileSize"`
		AllowedFileTypes         *string `json:"allowedFileTypes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.SiteName != nil {
		update["siteName"] = *req.SiteName
	}
	if req.SiteEmail != nil {
		update["siteEmail"] = *req.SiteEmail
	}
	if req.MaintenanceMode != nil {
		update["maintenanceMode"] = *req.MaintenanceMode
	}
	if req.AllowRegistrations != nil {
		update["allowRegistrations"] = *req.AllowRegistrations
	}
	if req.RequireEmailVerification != nil {
		update["requireEmailVerification"] = *req.RequireEmailVerification
	}
	if req.MaxFileSize != nil {
		update["maxFileSize"] = *req.MaxFileSize
	}
	if req.AllowedFileTypes != nil {
		update["allowedFileTypes"] = *req.AllowedFileTypes
	}

	result := h.DB.Collection("settings").FindOneAndUpdate(context.TODO(),
		bson.M{},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var settings models.Settings
	if err := result.Decode(&settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}
