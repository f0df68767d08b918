package dto

import "time"

// GetMarketDataParam selects the symbol and candle window to fetch.
type GetMarketDataParam struct {
	Symbol   string
	Range    string
	Interval string
}

// OHLCV is one candle from the chart endpoint.
type OHLCV struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// MarketSnapshot is the combined quote and derived-indicator view of one
// symbol at fetch time. Pointer fields are nil when the upstream response
// did not carry the value.
type MarketSnapshot struct {
	Symbol       string    `json:"symbol"`
	MarketPrice  float64   `json:"market_price"`
	MarketCap    float64   `json:"market_cap"`
	TrailingPE   *float64  `json:"trailing_pe,omitempty"`
	ForwardPE    *float64  `json:"forward_pe,omitempty"`
	Low52W       *float64  `json:"low_52w,omitempty"`
	High52W      *float64  `json:"high_52w,omitempty"`
	SMA50        *float64  `json:"sma_50,omitempty"`
	SMA200       *float64  `json:"sma_200,omitempty"`
	RSI14        *float64  `json:"rsi_14,omitempty"`
	Volume       *float64  `json:"volume,omitempty"`
	Beta         *float64  `json:"beta,omitempty"`
	AnnualReturn *float64  `json:"annual_return,omitempty"`
	AnnualVol    *float64  `json:"annual_volatility,omitempty"`
	MaxDrawdown  *float64  `json:"max_drawdown,omitempty"`
	AsOf         time.Time `json:"as_of"`
	OHLCV        []OHLCV   `json:"ohlcv,omitempty"`
}

// ToRaw flattens the snapshot into the loosely-typed map the indicator
// normalizer consumes. Absent values stay absent instead of zeroing.
func (m *MarketSnapshot) ToRaw(sector string) map[string]interface{} {
	raw := map[string]interface{}{
		"current_price": m.MarketPrice,
		"market_cap":    m.MarketCap,
	}
	if sector != "" {
		raw["sector"] = sector
	}
	if !m.AsOf.IsZero() {
		raw["as_of"] = m.AsOf.Format(time.RFC3339)
	}
	setIfPresent(raw, "trailing_pe", m.TrailingPE)
	setIfPresent(raw, "forward_pe", m.ForwardPE)
	setIfPresent(raw, "low_52w", m.Low52W)
	setIfPresent(raw, "high_52w", m.High52W)
	setIfPresent(raw, "sma_50", m.SMA50)
	setIfPresent(raw, "sma_200", m.SMA200)
	setIfPresent(raw, "rsi_14", m.RSI14)
	setIfPresent(raw, "volume", m.Volume)
	setIfPresent(raw, "beta", m.Beta)
	return raw
}

func setIfPresent(raw map[string]interface{}, key string, v *float64) {
	if v != nil {
		raw[key] = *v
	}
}

// ChartResponse mirrors the chart API payload.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult is one symbol's candle series plus quote metadata.
type ChartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
		RegularMarketTime  int64   `json:"regularMarketTime"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []float64 `json:"open"`
			High   []float64 `json:"high"`
			Low    []float64 `json:"low"`
			Close  []float64 `json:"close"`
			Volume []int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// QuoteResponse mirrors the quote API payload.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []Quote   `json:"result"`
		Error  *APIError `json:"error"`
	} `json:"quoteResponse"`
}

// Quote is one symbol's fundamental quote row.
type Quote struct {
	Symbol              string   `json:"symbol"`
	RegularMarketPrice  float64  `json:"regularMarketPrice"`
	RegularMarketTime   int64    `json:"regularMarketTime"`
	MarketCap           float64  `json:"marketCap"`
	TrailingPE          *float64 `json:"trailingPE,omitempty"`
	ForwardPE           *float64 `json:"forwardPE,omitempty"`
	FiftyTwoWeekLow     *float64 `json:"fiftyTwoWeekLow,omitempty"`
	FiftyTwoWeekHigh    *float64 `json:"fiftyTwoWeekHigh,omitempty"`
	RegularMarketVolume *float64 `json:"regularMarketVolume,omitempty"`
	Beta                *float64 `json:"beta,omitempty"`
}

// APIError is the error object both market data endpoints share.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
