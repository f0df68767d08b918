package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FullSnapshot(t *testing.T) {
	raw := map[string]interface{}{
		"current_price": 175.02,
		"market_cap":    "2750000000000",
		"trailing_pe":   36,
		"forward_pe":    29.8,
		"low_52w":       86.62,
		"high_52w":      212.19,
		"sma_50":        168.4,
		"sma_200":       152.1,
		"rsi_14":        61.3,
		"volume":        191953400,
		"beta":          2.12,
		"sector":        "Technology",
		"as_of":         "2026-08-21T16:00:00Z",
	}

	rec, err := Normalize("NVDA", raw)
	require.NoError(t, err)

	assert.Equal(t, "NVDA", rec.Ticker)
	assert.Equal(t, 175.02, rec.CurrentPrice)
	assert.Equal(t, 2750000000000.0, rec.MarketCap)
	assert.Equal(t, "technology", rec.Sector)
	assert.True(t, rec.TrailingPE.Valid)
	assert.Equal(t, 36.0, rec.TrailingPE.Value)
	assert.True(t, rec.ForwardPE.Valid)
	assert.Equal(t, 29.8, rec.ForwardPE.Value)
	assert.True(t, rec.RSI14.Valid)
	assert.True(t, rec.Volume.Valid)
	assert.Equal(t, 2.12, rec.Beta.Value)
	assert.False(t, rec.AsOf.IsZero())
}

func TestNormalize_MandatoryOnly(t *testing.T) {
	rec, err := Normalize("MSFT", map[string]interface{}{
		"current_price": 420.5,
		"market_cap":    3.1e12,
	})
	require.NoError(t, err)

	// Optional fields stay absent, never zero-defaulted.
	assert.False(t, rec.TrailingPE.Valid)
	assert.False(t, rec.ForwardPE.Valid)
	assert.False(t, rec.Low52W.Valid)
	assert.False(t, rec.High52W.Valid)
	assert.False(t, rec.SMA50.Valid)
	assert.False(t, rec.SMA200.Valid)
	assert.False(t, rec.RSI14.Valid)
	assert.False(t, rec.Volume.Valid)
	assert.False(t, rec.Beta.Valid)
	assert.True(t, rec.AsOf.IsZero())
}

func TestNormalize_MissingPrice(t *testing.T) {
	_, err := Normalize("NVDA", map[string]interface{}{
		"market_cap": 2.7e12,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "current_price", vErr.Field)
}

func TestNormalize_NonNumericMarketCap(t *testing.T) {
	_, err := Normalize("NVDA", map[string]interface{}{
		"current_price": 175.02,
		"market_cap":    "unknown",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "market_cap", vErr.Field)
}

func TestNormalize_EmptyTicker(t *testing.T) {
	_, err := Normalize("  ", map[string]interface{}{
		"current_price": 10.0,
		"market_cap":    1e9,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestNormalize_LowAboveHigh(t *testing.T) {
	_, err := Normalize("NVDA", map[string]interface{}{
		"current_price": 175.02,
		"market_cap":    2.7e12,
		"low_52w":       212.19,
		"high_52w":      86.62,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, errors.As(err, &vErr))
}

func TestNormalize_PriceOutsideRangeTolerated(t *testing.T) {
	// A stale 52-week range must not reject a fresher price.
	rec, err := Normalize("NVDA", map[string]interface{}{
		"current_price": 250.0,
		"market_cap":    2.7e12,
		"low_52w":       86.62,
		"high_52w":      212.19,
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, rec.CurrentPrice)
}

func TestNormalize_MalformedOptionalStaysAbsent(t *testing.T) {
	rec, err := Normalize("NVDA", map[string]interface{}{
		"current_price": 175.02,
		"market_cap":    2.7e12,
		"trailing_pe":   "n/a",
	})
	require.NoError(t, err)
	assert.False(t, rec.TrailingPE.Valid)
}
