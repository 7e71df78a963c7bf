package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service kinds a provider can own. A provider's services list spans three
// collections, so each entry carries its kind alongside the id.
const (
	ServiceKindCleaning = "cleaning"
	ServiceKindHotel    = "hotel"
	ServiceKindRide     = "ride"
)

// ServiceRef is a tagged reference to a listing in one of the three service
// collections.
type ServiceRef struct {
	Kind string             `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

func ValidServiceKind(kind string) bool {
	return kind == ServiceKindCleaning || kind == ServiceKindHotel || kind == ServiceKindRide
}

type Provider struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Email        string              `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	City         string              `bson:"city,omitempty" json:"city,omitempty"`
	State        string              `bson:"state,omitempty" json:"state,omitempty"`
	Pincode      string              `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Rating       float64             `bson:"rating" json:"rating"`
	TotalReviews int                 `bson:"totalReviews" json:"totalReviews"`
	Logo         string              `bson:"logo,omitempty" json:"logo,omitempty"`
	Images       []string            `bson:"images" json:"images"`
	Services     []ServiceRef        `bson:"services" json:"services"`
	Specialties  []string            `bson:"specialties" json:"specialties"`
	IsActive     bool                `bson:"isActive" json:"isActive"`
	User         *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
