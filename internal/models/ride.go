package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ride represents both a point-to-point ride booking and a standing cab
// service listing. A booking typically has When set and no images; a listing
// carries name, description and images.
type Ride struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name,omitempty" json:"name,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Pickup      string              `bson:"pickup" json:"pickup"`
	Drop        string              `bson:"drop" json:"drop"`
	When        string              `bson:"when,omitempty" json:"when,omitempty"`
	Fare        float64             `bson:"fare" json:"fare"`
	Distance    float64             `bson:"distance,omitempty" json:"distance,omitempty"`
	VehicleType string              `bson:"vehicleType,omitempty" json:"vehicleType,omitempty"`
	Status      string              `bson:"status,omitempty" json:"status,omitempty"`
	Images      []string            `bson:"images" json:"images"`
	Provider    *primitive.ObjectID `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
