package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/servihub/marketplace-api/internal/models"
)

type BookRideRequest struct {
	Pickup      string  `json:"pickup" binding:"required"`
	Drop        string  `json:"drop" binding:"required"`
	When        string  `json:"when"`
	VehicleType string  `json:"vehicleType"`
	Fare        float64 `json:"fare"`
	Distance    float64 `json:"distance"`
}

// BookRide records a point-to-point ride. When the client supplies no fare,
// the injected estimator prices the trip from the vehicle type and distance.
func (h *Handler) BookRide(c *gin.Context) {
	var req BookRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pickup and drop are required"})
		return
	}

	fare := req.Fare
	distance := req.Distance
	if fare <= 0 {
		fare, distance = h.Fare.Estimate(req.VehicleType, req.Distance)
	}

	now := time.Now()
	ride := models.Ride{
		ID:          primitive.NewObjectID(),
		Pickup:      req.Pickup,
		Drop:        req.Drop,
		When:        req.When,
		Fare:        fare,
		Distance:    distance,
		VehicleType: req.VehicleType,
		Status:      models.BookingConfirmed,
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.DB.Collection("rides").InsertOne(context.TODO(), ride); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to book ride"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Ride booked successfully from %s to %s", req.Pickup, req.Drop),
		"fare":    fare,
		"rideId":  ride.ID,
	})
}
