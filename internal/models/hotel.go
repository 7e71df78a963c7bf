package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hotel struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Location           string              `bson:"location" json:"location"`
	Price              float64             `bson:"price" json:"price"`
	Capacity           int                 `bson:"capacity" json:"capacity"`
	OutsideFoodAllowed bool                `bson:"outsideFoodAllowed" json:"outsideFoodAllowed"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	Rating             float64             `bson:"rating" json:"rating"`
	Amenities          []string            `bson:"amenities" json:"amenities"`
	Images             []string            `bson:"images" json:"images"`
	Provider           *primitive.ObjectID `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Room is an individual bookable room within a hotel.
type Room struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HotelID   primitive.ObjectID `bson:"hotelId" json:"hotelId"`
	RoomType  string             `bson:"roomType" json:"roomType"`
	Price     float64            `bson:"price" json:"price"`
	Capacity  int                `bson:"capacity" json:"capacity"`
	Amenities []string           `bson:"amenities" json:"amenities"`
	Available bool               `bson:"available" json:"available"`
	Images    []string           `bson:"images" json:"images"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
