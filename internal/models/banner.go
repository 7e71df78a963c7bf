package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BannerMetric struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

type HomeBanner struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Subtitle      string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ButtonText    string             `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	ButtonLink    string             `bson:"buttonLink,omitempty" json:"buttonLink,omitempty"`
	Image         string             `bson:"image" json:"image"`
	Metrics       []BannerMetric     `bson:"metrics" json:"metrics"`
	GradientStart string             `bson:"gradientStart" json:"gradientStart"`
	GradientEnd   string             `bson:"gradientEnd" json:"gradientEnd"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CleaningBanner is a singleton: adding a new one replaces the current one.
type CleaningBanner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Subtitle  string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Image     string             `bson:"image" json:"image"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
