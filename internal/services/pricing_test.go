package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateUsesSuppliedDistance(t *testing.T) {
	e := NewTableFareEstimator()

	fare, dist := e.Estimate("bike", 4)
	assert.Equal(t, 4.0, dist)
	assert.Equal(t, 40.0, fare) // 20 + 5*4

	fare, dist = e.Estimate("auto", 10)
	assert.Equal(t, 10.0, dist)
	assert.Equal(t, 105.0, fare) // 25 + 8*10

	fare, dist = e.Estimate("cab", 2)
	assert.Equal(t, 2.0, dist)
	assert.Equal(t, 54.0, fare) // 30 + 12*2
}

func TestEstimateUnknownVehicleFallsBackToCab(t *testing.T) {
	e := NewTableFareEstimator()

	fare, _ := e.Estimate("spaceship", 5)
	cabFare, _ := e.Estimate("cab", 5)
	assert.Equal(t, cabFare, fare)
}

func TestEstimatePicksRandomDistanceWhenMissing(t *testing.T) {
	e := NewTableFareEstimator()
	e.randomKm = func() float64 { return 7 }

	fare, dist := e.Estimate("bike", 0)
	assert.Equal(t, 7.0, dist)
	assert.Equal(t, 55.0, fare)

	// Negative distance counts as missing too.
	fare, dist = e.Estimate("bike", -3)
	assert.Equal(t, 7.0, dist)
	assert.Equal(t, 55.0, fare)
}

func TestEstimateRandomDistanceStaysInRange(t *testing.T) {
	e := NewTableFareEstimator()

	for i := 0; i < 200; i++ {
		fare, dist := e.Estimate("bike", 0)
		assert.GreaterOrEqual(t, dist, 2.0)
		assert.LessOrEqual(t, dist, 11.0)
		assert.GreaterOrEqual(t, fare, 30.0)
		assert.LessOrEqual(t, fare, 75.0)
	}
}
