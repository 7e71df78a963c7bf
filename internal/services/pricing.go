package services

import "math/rand"

// FareEstimator computes a ride fare. distanceKm <= 0 means the caller has no
// distance, and the estimator picks one itself. Kept behind an interface so a
// real distance/routing service can replace it without touching handlers.
type FareEstimator interface {
	Estimate(vehicleType string, distanceKm float64) (fare float64, distanceUsed float64)
}

type fareRate struct {
	base  float64
	perKm float64
}

// TableFareEstimator prices rides from a static per-vehicle rate table. When
// no distance is supplied it substitutes a pseudo-random integer distance in
// [2,11] km, a stand-in for a routing service.
type TableFareEstimator struct {
	rates map[string]fareRate
	// randomKm is injectable for tests.
	randomKm func() float64
}

func NewTableFareEstimator() *TableFareEstimator {
	return &TableFareEstimator{
		rates: map[string]fareRate{
			"bike": {base: 20, perKm: 5},
			"auto": {base: 25, perKm: 8},
			"cab":  {base: 30, perKm: 12},
		},
		randomKm: func() float64 { return float64(rand.Intn(10) + 2) },
	}
}

func (e *TableFareEstimator) Estimate(vehicleType string, distanceKm float64) (float64, float64) {
	rate, ok := e.rates[vehicleType]
	if !ok {
		rate = e.rates["cab"]
	}
	if distanceKm <= 0 {
		distanceKm = e.randomKm()
	}
	return rate.base + rate.perKm*distanceKm, distanceKm
}
