package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 1, nightsBetween(day(2025, 7, 1), day(2025, 7, 2)))
	assert.Equal(t, 3, nightsBetween(day(2025, 7, 1), day(2025, 7, 4)))

	// Partial days round up to a full night.
	checkIn := time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 7, 2, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, nightsBetween(checkIn, checkOut))

	checkOut = time.Date(2025, 7, 3, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, nightsBetween(checkIn, checkOut))
}

func TestValidateStay(t *testing.T) {
	today := day(2025, 7, 10)

	assert.NoError(t, validateStay(day(2025, 7, 10), day(2025, 7, 12), today))
	assert.NoError(t, validateStay(day(2025, 7, 11), day(2025, 7, 12), today))

	err := validateStay(day(2025, 7, 9), day(2025, 7, 12), today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past")

	err = validateStay(day(2025, 7, 12), day(2025, 7, 12), today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after check-in")

	err = validateStay(day(2025, 7, 12), day(2025, 7, 11), today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after check-in")
}

func TestParseBookingDate(t *testing.T) {
	got, err := parseBookingDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 7, 1), got)

	got, err = parseBookingDate("2025-07-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 15, 4, 5, 0, time.UTC), got)

	_, err = parseBookingDate("01/07/2025")
	assert.Error(t, err)
}

func TestCancelBookingIsTerminal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second cancel is rejected", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "servihub.bookings", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "hotelId", Value: primitive.NewObjectID()},
			{Key: "bookingStatus", Value: "cancelled"},
		}))

		h := NewHandler(mt.DB, nil, nil, nil)
		c, w := newJSONTestContext(http.MethodPut, "/api/hotels/bookings/"+id.Hex()+"/cancel", "")
		c.Params = gin.Params{{Key: "id", Value: id.Hex()}}

		h.CancelBooking(c)

		// No update response was queued: the guard must answer before any
		// write is attempted.
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already cancelled")
	})

	mt.Run("first cancel goes through", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "servihub.bookings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "hotelId", Value: primitive.NewObjectID()},
				{Key: "bookingStatus", Value: "confirmed"},
			}),
			mtest.CreateSuccessResponse(),
		)

		h := NewHandler(mt.DB, nil, nil, nil)
		c, w := newJSONTestContext(http.MethodPut, "/api/hotels/bookings/"+id.Hex()+"/cancel", "")
		c.Params = gin.Params{{Key: "id", Value: id.Hex()}}

		h.CancelBooking(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cancelled")
	})

	mt.Run("unknown booking is 404", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "servihub.bookings", mtest.FirstBatch))

		h := NewHandler(mt.DB, nil, nil, nil)
		c, w := newJSONTestContext(http.MethodPut, "/api/hotels/bookings/"+id.Hex()+"/cancel", "")
		c.Params = gin.Params{{Key: "id", Value: id.Hex()}}

		h.CancelBooking(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
