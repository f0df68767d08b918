package scoring

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Raw field keys accepted by Normalize.
const (
	FieldCurrentPrice = "current_price"
	FieldMarketCap    = "market_cap"
	FieldTrailingPE   = "trailing_pe"
	FieldForwardPE    = "forward_pe"
	FieldLow52W       = "low_52w"
	FieldHigh52W      = "high_52w"
	FieldSMA50        = "sma_50"
	FieldSMA200       = "sma_200"
	FieldRSI14        = "rsi_14"
	FieldVolume       = "volume"
	FieldBeta         = "beta"
	FieldSector       = "sector"
	FieldAsOf         = "as_of"
)

// Normalize converts a loosely-typed raw snapshot into an IndicatorRecord.
// Ticker, current price and market cap are mandatory and must be numeric.
// Optional fields stay absent when the raw map does not carry them; they are
// never defaulted. A 52-week low above the 52-week high is rejected, while a
// price outside the range is tolerated since the range may be stale.
func Normalize(ticker string, raw map[string]interface{}) (IndicatorRecord, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return IndicatorRecord{}, &ValidationError{Ticker: ticker, Field: "ticker", Reason: "is empty"}
	}

	rec := IndicatorRecord{Ticker: ticker}

	price, ok := toFloat(raw[FieldCurrentPrice])
	if !ok {
		return IndicatorRecord{}, &ValidationError{Ticker: ticker, Field: FieldCurrentPrice, Reason: "is absent or non-numeric"}
	}
	rec.CurrentPrice = price

	marketCap, ok := toFloat(raw[FieldMarketCap])
	if !ok {
		return IndicatorRecord{}, &ValidationError{Ticker: ticker, Field: FieldMarketCap, Reason: "is absent or non-numeric"}
	}
	rec.MarketCap = marketCap

	rec.TrailingPE = optionalMetric(raw, FieldTrailingPE)
	rec.ForwardPE = optionalMetric(raw, FieldForwardPE)
	rec.Low52W = optionalMetric(raw, FieldLow52W)
	rec.High52W = optionalMetric(raw, FieldHigh52W)
	rec.SMA50 = optionalMetric(raw, FieldSMA50)
	rec.SMA200 = optionalMetric(raw, FieldSMA200)
	rec.RSI14 = optionalMetric(raw, FieldRSI14)
	rec.Volume = optionalMetric(raw, FieldVolume)
	rec.Beta = optionalMetric(raw, FieldBeta)

	if rec.Low52W.Valid && rec.High52W.Valid && rec.Low52W.Value > rec.High52W.Value {
		return IndicatorRecord{}, &ValidationError{Ticker: ticker, Field: FieldLow52W, Reason: "exceeds 52-week high"}
	}

	if sector, ok := raw[FieldSector].(string); ok {
		rec.Sector = strings.ToLower(strings.TrimSpace(sector))
	}
	if ts, ok := toTime(raw[FieldAsOf]); ok {
		rec.AsOf = ts
	}

	return rec, nil
}

func optionalMetric(raw map[string]interface{}, key string) Metric {
	v, ok := raw[key]
	if !ok || v == nil {
		return Metric{}
	}
	f, ok := toFloat(v)
	if !ok {
		return Metric{}
	}
	return NewMetric(f)
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := time.Parse(time.RFC3339, val)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}
