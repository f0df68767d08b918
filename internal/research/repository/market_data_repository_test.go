package repository

import (
	"testing"

	"equity-reporter/internal/research/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampCandles(n int, start float64) []dto.OHLCV {
	candles := make([]dto.OHLCV, 0, n)
	for i := 0; i < n; i++ {
		price := start + float64(i)
		candles = append(candles, dto.OHLCV{
			Timestamp: int64(1700000000 + i*86400),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000,
		})
	}
	return candles
}

func TestAttachDerivedIndicators_LongSeries(t *testing.T) {
	snapshot := &dto.MarketSnapshot{Symbol: "NVDA"}
	candles := rampCandles(210, 100)

	attachDerivedIndicators(snapshot, candles)

	require.NotNil(t, snapshot.SMA50)
	require.NotNil(t, snapshot.SMA200)
	require.NotNil(t, snapshot.RSI14)

	// Last 50 closes run 260..309, last 200 run 110..309.
	assert.InDelta(t, 284.5, *snapshot.SMA50, 0.001)
	assert.InDelta(t, 209.5, *snapshot.SMA200, 0.001)
	// A strictly rising series has no down days.
	assert.InDelta(t, 100.0, *snapshot.RSI14, 0.01)

	require.NotNil(t, snapshot.AnnualReturn)
	require.NotNil(t, snapshot.AnnualVol)
	require.NotNil(t, snapshot.MaxDrawdown)
	assert.Greater(t, *snapshot.AnnualReturn, 0.0)
	assert.Greater(t, *snapshot.AnnualVol, 0.0)
	assert.Equal(t, 0.0, *snapshot.MaxDrawdown, "monotonic rise never draws down")
}

func TestAttachDerivedIndicators_ShortSeries(t *testing.T) {
	snapshot := &dto.MarketSnapshot{Symbol: "NVDA"}
	candles := rampCandles(10, 100)

	attachDerivedIndicators(snapshot, candles)

	assert.Nil(t, snapshot.SMA50, "10 closes cannot fill a 50 period window")
	assert.Nil(t, snapshot.SMA200)
	assert.Nil(t, snapshot.RSI14, "RSI needs more than 14 closes")
	assert.NotNil(t, snapshot.AnnualReturn, "return stats only need a few closes")
	assert.NotNil(t, snapshot.AnnualVol)
}

func TestAttachDerivedIndicators_TooFewCloses(t *testing.T) {
	snapshot := &dto.MarketSnapshot{Symbol: "NVDA"}

	attachDerivedIndicators(snapshot, rampCandles(2, 100))

	assert.Nil(t, snapshot.SMA50)
	assert.Nil(t, snapshot.RSI14)
	assert.Nil(t, snapshot.AnnualReturn)
	assert.Nil(t, snapshot.AnnualVol)
	assert.Nil(t, snapshot.MaxDrawdown)
}

func TestAttachDerivedIndicators_MaxDrawdown(t *testing.T) {
	snapshot := &dto.MarketSnapshot{Symbol: "NVDA"}
	closes := []float64{100, 120, 90, 110}
	candles := make([]dto.OHLCV, 0, len(closes))
	for i, c := range closes {
		candles = append(candles, dto.OHLCV{Timestamp: int64(i), Close: c})
	}

	attachDerivedIndicators(snapshot, candles)

	require.NotNil(t, snapshot.MaxDrawdown)
	// Peak 120 to trough 90.
	assert.InDelta(t, 0.25, *snapshot.MaxDrawdown, 1e-9)
}
