package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servihub/marketplace-api/internal/models"
)

type BookHotelRequest struct {
	HotelID    string `json:"hotelId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
	Guests     int    `json:"guests" binding:"required,min=1"`
	GuestName  string `json:"guestName" binding:"required"`
	GuestEmail string `json:"guestEmail" binding:"required,email"`
	GuestPhone string `json:"guestPhone"`
	ProviderID string `json:"providerId"`
}

// nightsBetween counts billable nights: the stay duration rounded up to
// whole days.
func nightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// validateStay rejects past check-ins and non-positive stay lengths. today
// must be midnight-truncated.
func validateStay(checkIn, checkOut, today time.Time) error {
	if checkIn.Before(today) {
		return fmt.Errorf("check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return fmt.Errorf("check-out date must be after check-in date")
	}
	return nil
}

func parseBookingDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// BookHotel validates the stay, prices it at the hotel's nightly rate and
// records a confirmed booking.
func (h *Handler) BookHotel(c *gin.Context) {
	var req BookHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: hotelId, checkIn, checkOut, guests, guestName, guestEmail",
		})
		return
	}

	hotelID, err := primitive.ObjectIDFromHex(req.HotelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid hotel ID"})
		return
	}

	checkIn, err1 := parseBookingDate(req.CheckIn)
	checkOut, err2 := parseBookingDate(req.CheckOut)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := validateStay(checkIn, checkOut, today); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var hotel models.Hotel
	if err := h.DB.Collection("hotels").FindOne(context.TODO(), bson.M{"_id": hotelID}).Decode(&hotel); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Hotel not found"})
		return
	}

	if req.Guests > hotel.Capacity {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Hotel capacity is %d guests. You selected %d guests.", hotel.Capacity, req.Guests),
		})
		return
	}

	nights := nightsBetween(checkIn, checkOut)
	totalAmount := hotel.Price * float64(nights)

	providerID := hotel.Provider
	if req.ProviderID != "" {
		if id, err := primitive.ObjectIDFromHex(req.ProviderID); err == nil {
			providerID = &id
		}
	}

	booking := models.Booking{
		ID:            primitive.NewObjectID(),
		HotelID:       hotel.ID,
		ProviderID:    providerID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		Nights:        nights,
		TotalAmount:   totalAmount,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.BookingConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := h.DB.Collection("bookings").InsertOne(context.TODO(), booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Hotel booked successfully!",
		"booking": gin.H{
			"_id": booking.ID,
			"hotel": gin.H{
				"name":     hotel.Name,
				"location": hotel.Location,
			},
			"checkIn":       booking.CheckIn,
			"checkOut":      booking.CheckOut,
			"guests":        booking.Guests,
			"nights":        booking.Nights,
			"totalAmount":   booking.TotalAmount,
			"bookingStatus": booking.BookingStatus,
			"bookingId":     booking.ID,
		},
	})
}

func (h *Handler) GetBookingByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := h.DB.Collection("bookings").FindOne(context.TODO(), bson.M{"_id": id}).Decode(&booking); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

func (h *Handler) GetBookings(c *gin.Context) {
	filter := bson.M{}
	if providerHex := c.Query("providerId"); providerHex != "" {
		if providerID, err := primitive.ObjectIDFromHex(providerHex); err == nil {
			filter["providerId"] = providerID
		}
	}
	if hotelHex := c.Query("hotelId"); hotelHex != "" {
		if hotelID, err := primitive.ObjectIDFromHex(hotelHex); err == nil {
			filter["hotelId"] = hotelID
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("bookings").Find(context.TODO(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch bookings"})
		return
	}
	defer cursor.Close(context.TODO())

	var bookings []models.Booking
	if err := cursor.All(context.TODO(), &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode bookings"})
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "bookings": bookings})
}

// CancelBooking marks a booking cancelled. Cancelling twice is rejected, so
// cancelled is terminal.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID"})
		return
	}

	bookings := h.DB.Collection("bookings")

	var booking models.Booking
	if err := bookings.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&booking); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
		return
	}

	if booking.BookingStatus == models.BookingCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Booking is already cancelled"})
		return
	}

	_, err = bookings.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"bookingStatus": models.BookingCancelled, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel booking"})
		return
	}
	booking.BookingStatus = models.BookingCancelled

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking cancelled successfully", "booking": booking})
}
