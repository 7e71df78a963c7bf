package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"

	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is a confirmed hotel reservation for a date range.
type Booking struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	HotelID       primitive.ObjectID  `bson:"hotelId" json:"hotelId"`
	ProviderID    *primitive.ObjectID `bson:"providerId,omitempty" json:"providerId,omitempty"`
	RoomID        *primitive.ObjectID `bson:"roomId,omitempty" json:"roomId,omitempty"`
	CheckIn       time.Time           `bson:"checkIn" json:"checkIn"`
	CheckOut      time.Time           `bson:"checkOut" json:"checkOut"`
	Guests        int                 `bson:"guests" json:"guests"`
	GuestName     string              `bson:"guestName" json:"guestName"`
	GuestEmail    string              `bson:"guestEmail" json:"guestEmail"`
	GuestPhone    string              `bson:"guestPhone,omitempty" json:"guestPhone,omitempty"`
	Nights        int                 `bson:"nights" json:"nights"`
	TotalAmount   float64             `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus string              `bson:"paymentStatus" json:"paymentStatus"`
	BookingStatus string              `bson:"bookingStatus" json:"bookingStatus"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
