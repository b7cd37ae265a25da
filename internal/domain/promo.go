package domain

import "time"

// PromoCode is a promotional discount definition with a usage budget.
// The code is stored upper-cased and is globally unique in that form.
// used_count is the only field that mutates after creation; it only ever
// increases and never exceeds MaxUses post-commit.
type PromoCode struct {
	Code            string    `json:"code"`
	DiscountPercent float64   `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
	MinOrderAmount  float64   `json:"min_order_amount"`
	MaxUses         int       `json:"max_uses"`
	UsedCount       int       `json:"used_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Expired reports whether the code's validity window has passed at now.
// Expiry timestamps are compared as naive wall-clock values: any timezone
// information is stripped before comparison. A deliberate simplification
// carried over from the original billing rules — do not "fix" this by
// comparing instants.
func (p PromoCode) Expired(now time.Time) bool {
	return NaiveUTC(p.ExpiresAt).Before(NaiveUTC(now.UTC()))
}

// DiscountFor returns the rounded discount this code grants on orderAmount.
func (p PromoCode) DiscountFor(orderAmount float64) float64 {
	return Round2(orderAmount * p.DiscountPercent / 100)
}

// NaiveUTC reinterprets t's wall-clock reading as UTC, discarding the
// original offset. time.Date rather than t.UTC(), which would convert the
// instant instead of truncating the zone.
func NaiveUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// PromoValidation is the structured result of a side-effect-free promo
// check. Invalid codes are reported through Valid=false plus Message, never
// through an error, so API consumers can check codes freely.
type PromoValidation struct {
	Valid           bool    `json:"valid"`
	PromoCode       string  `json:"promo_code"`
	DiscountAmount  float64 `json:"discount_amount"`
	DiscountPercent float64 `json:"discount_percent"`
	Message         string  `json:"message"`
}

// PromoApplication is the result of a successful promo apply.
// UsageCount is the post-increment value.
type PromoApplication struct {
	Status          string  `json:"status"`
	PromoCode       string  `json:"promo_code"`
	DiscountApplied float64 `json:"discount_applied"`
	FinalAmount     float64 `json:"final_amount"`
	UsageCount      int     `json:"usage_count"`
	MaxUsages       int     `json:"max_usages"`
}
