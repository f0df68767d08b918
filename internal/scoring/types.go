// Package scoring computes a 0-100 composite score and a discrete
// recommendation for one ticker from a normalized indicator snapshot,
// classified sentiment signals, and flagged risks.
package scoring

import "time"

// Group names one signal dimension feeding the composite score.
type Group string

const (
	GroupValuation Group = "valuation"
	GroupMomentum  Group = "momentum"
	GroupSentiment Group = "sentiment"
	GroupRisk      Group = "risk"
)

// Polarity is the direction a sentiment signal assigns to a ticker.
type Polarity string

const (
	PolarityBullish Polarity = "bullish"
	PolarityBearish Polarity = "bearish"
	PolarityNeutral Polarity = "neutral"
)

// Metric is an optional numeric field. Valid=false means the upstream
// snapshot did not carry the value, which is distinct from zero.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewMetric returns a present Metric.
func NewMetric(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// IndicatorRecord is the canonical per-ticker snapshot the scorers read.
// Ticker, CurrentPrice and MarketCap are mandatory. Every other field is
// present-or-absent, never defaulted to zero.
type IndicatorRecord struct {
	Ticker       string    `json:"ticker"`
	Sector       string    `json:"sector,omitempty"`
	CurrentPrice float64   `json:"current_price"`
	MarketCap    float64   `json:"market_cap"`
	TrailingPE   Metric    `json:"trailing_pe"`
	ForwardPE    Metric    `json:"forward_pe"`
	Low52W       Metric    `json:"low_52w"`
	High52W      Metric    `json:"high_52w"`
	SMA50        Metric    `json:"sma_50"`
	SMA200       Metric    `json:"sma_200"`
	RSI14        Metric    `json:"rsi_14"`
	Volume       Metric    `json:"volume"`
	Beta         Metric    `json:"beta"`
	AsOf         time.Time `json:"as_of,omitempty"`
}

// SentimentSignal is one classified statement about a ticker.
type SentimentSignal struct {
	Source      string   `json:"source"`
	Polarity    Polarity `json:"polarity"`
	Note        string   `json:"note,omitempty"`
	PriceTarget *float64 `json:"price_target,omitempty"`
}

// RiskSeverity tiers a risk flag. Higher tiers cut the risk sub-score harder.
type RiskSeverity string

const (
	SeverityLow    RiskSeverity = "low"
	SeverityMedium RiskSeverity = "medium"
	SeverityHigh   RiskSeverity = "high"
)

// Risk flag categories.
const (
	RiskRegulatory  = "regulatory"
	RiskSupply      = "supply"
	RiskCompetitive = "competitive"
	RiskMacro       = "macro"
)

// RiskFlag marks one identified risk for a ticker.
type RiskFlag struct {
	Category string       `json:"category"`
	Severity RiskSeverity `json:"severity"`
	Detail   string       `json:"detail,omitempty"`
}

// SubScore is the bounded output of a single scorer. Value must land in
// [0,100] and Weight in (0,1]. Confidence=false marks a neutral default
// emitted because the input lacked the data the scorer needed.
type SubScore struct {
	Group      Group   `json:"group"`
	Value      float64 `json:"value"`
	Weight     float64 `json:"weight"`
	Confidence bool    `json:"confidence"`
}

// EffectiveWeight is the weight a sub-score carries into aggregation.
// A low-confidence sub-score keeps half its configured weight, so missing
// data degrades influence without removing the dimension.
func (s SubScore) EffectiveWeight() float64 {
	if !s.Confidence {
		return s.Weight / 2
	}
	return s.Weight
}

// CompositeScore is the weighted aggregate of all sub-scores for one run.
type CompositeScore struct {
	Value     float64    `json:"value"`
	SubScores []SubScore `json:"sub_scores"`
	WeightSum float64    `json:"weight_sum"`
}

// Category is a discrete recommendation verdict.
type Category string

const (
	StrongBuy  Category = "Strong Buy"
	Buy        Category = "Buy"
	Hold       Category = "Hold"
	Sell       Category = "Sell"
	StrongSell Category = "Strong Sell"

	// NoRating marks a degraded run where aggregation could not produce
	// a meaningful composite.
	NoRating Category = "No Rating"
)

// Recommendation pairs the verdict with the score it derives from and a
// short rationale naming the dominant signal groups.
type Recommendation struct {
	Category  Category `json:"category"`
	Score     float64  `json:"score"`
	Rationale string   `json:"rationale"`
	Vetoed    bool     `json:"vetoed"`
}
