package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// ValidRole reports whether role is one of the recognised user roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleSuperAdmin
}

type User struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Password    string              `bson:"password,omitempty" json:"-"` // bcrypt hash, absent for federated users
	GoogleID    string              `bson:"googleId,omitempty" json:"googleId,omitempty"`
	FirebaseUID string              `bson:"firebaseUid,omitempty" json:"firebaseUid,omitempty"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	Role        string              `bson:"role" json:"role"`
	Provider    *primitive.ObjectID `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
