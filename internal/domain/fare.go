package domain

import "math"

// Tariff constants, in currency units.
const (
	RatePerKm     = 10.0
	RatePerMinute = 5.0
)

// presenceDiscountRate is the flat discount applied when a promo code string
// was supplied on the finish request, regardless of whether that code exists
// or is valid. The promo ledger has its own percent-based logic; the two are
// deliberately independent (see DiscountMode in the service layer).
const presenceDiscountRate = 0.10

// Fare is the settlement amount triple for a finished trip, unrounded.
// Callers round with Round2 at the point of persistence.
type Fare struct {
	Base     float64
	Discount float64
	Final    float64
}

// ComputeFare turns trip telemetry and parking fines into a fare.
// promoApplied triggers the flat presence discount. Pure function; inputs
// are assumed to be validated non-negative numbers.
func ComputeFare(distanceKm float64, durationMinutes int, parkingFines float64, promoApplied bool) Fare {
	base := distanceKm*RatePerKm + float64(durationMinutes)*RatePerMinute + parkingFines
	var discount float64
	if promoApplied {
		discount = base * presenceDiscountRate
	}
	return Fare{Base: base, Discount: discount, Final: base - discount}
}

// Round2 rounds a money amount to 2 decimal places, half away from zero.
// Every persisted amount in the system goes through this single rounding
// site so fare and promo arithmetic cannot drift apart.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
