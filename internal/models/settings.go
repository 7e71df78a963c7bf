package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings is a single global document; reads create it with defaults when
// absent.
type Settings struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName                 string             `bson:"siteName" json:"siteName"`
	SiteEmail                string             `bson:"siteEmail" json:"siteEmail"`
	MaintenanceMode          bool               `bson:"maintenanceMode" json:"maintenanceMode"`
	AllowRegistrations       bool               `bson:"allowRegistrations" json:"allowRegistrations"`
	RequireEmailVerification bool               `bson:"requireEmailVerification" json:"requireEmailVerification"`
	MaxFileSize              int                `bson:"maxFileSize" json:"maxFileSize"` // MB
	AllowedFileTypes         string             `bson:"allowedFileTypes" json:"allowedFileTypes"`
	CreatedAt                time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings returns the document created on first read.
func DefaultSettings() Settings {
	now := time.Now()
	return Settings{
		SiteName:           "ServiHub",
		SiteEmail:          "admin@servihub.com",
		AllowRegistrations: true,
		MaxFileSize:        5,
		AllowedFileTypes:   "jpg,jpeg,png,gif,webp,pdf",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
