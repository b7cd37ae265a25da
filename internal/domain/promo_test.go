package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/carshare/backend/internal/domain"
)

func TestNaiveUTC_StripsZoneNotInstant(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	aware := time.Date(2026, 3, 1, 12, 0, 0, 0, loc)

	naive := domain.NaiveUTC(aware)

	// The wall-clock reading survives; the instant does not.
	assert.Equal(t, 12, naive.Hour())
	assert.Equal(t, time.UTC, naive.Location())
	assert.False(t, naive.Equal(aware))
}

func TestPromoCode_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	past := domain.PromoCode{ExpiresAt: now.Add(-time.Minute)}
	future := domain.PromoCode{ExpiresAt: now.Add(time.Minute)}

	assert.True(t, past.Expired(now))
	assert.False(t, future.Expired(now))
}

func TestPromoCode_Expired_NaiveComparison(t *testing.T) {
	// Expiry 23:00 UTC+5 is 18:00 UTC as an instant, but the naive
	// comparison reads it as 23:00 — still in the future at 20:00 UTC.
	loc := time.FixedZone("UTC+5", 5*3600)
	p := domain.PromoCode{ExpiresAt: time.Date(2026, 3, 1, 23, 0, 0, 0, loc)}
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	assert.False(t, p.Expired(now))
}

func TestPromoCode_DiscountFor(t *testing.T) {
	p := domain.PromoCode{DiscountPercent: 10}

	assert.Equal(t, 20.0, p.DiscountFor(200))
	assert.Equal(t, 0.1, p.DiscountFor(0.95))
}
