package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var CleaningCategories = []string{"Home", "Office", "Deep Cleaning", "Laundry", "Car Wash"}

func ValidCleaningCategory(category string) bool {
	for _, c := range CleaningCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Cleaning struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name             string              `bson:"name" json:"name"`
	Description      string              `bson:"description" json:"description"`
	Price            float64             `bson:"price" json:"price"`
	Category         string              `bson:"category" json:"category"`
	Duration         string              `bson:"duration" json:"duration"` // e.g. "2 hours"
	SuppliesIncluded bool                `bson:"suppliesIncluded" json:"suppliesIncluded"`
	Images           []string            `bson:"images" json:"images"`
	Provider         *primitive.ObjectID `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
