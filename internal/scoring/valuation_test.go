package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuationScorer_AbsentPE(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{Ticker: "NVDA", CurrentPrice: 175.02}})

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
	assert.Equal(t, DefaultConfig().Weights.Valuation, sub.Weight)
}

func TestValuationScorer_NonPositivePE(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(-12.5),
	}})

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence, "a negative P/E carries no valuation signal")
}

func TestValuationScorer_DefaultBandLinear(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	// Default band is 10..35, so a P/E of 22.5 sits exactly mid-band.
	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(22.5),
	}})

	assert.Equal(t, 50.0, sub.Value)
	assert.True(t, sub.Confidence)
}

func TestValuationScorer_CheapCapsAtHundred(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(4),
	}})

	assert.Equal(t, 100.0, sub.Value)
}

func TestValuationScorer_ExpensiveFloorsAtZero(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(90),
	}})

	assert.Equal(t, 0.0, sub.Value)
	assert.True(t, sub.Confidence)
}

func TestValuationScorer_SectorBand(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	// Technology band is 18..55; 36.5 sits exactly mid-band.
	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 175.02,
		Sector:       "technology",
		TrailingPE:   NewMetric(36.5),
	}})

	assert.Equal(t, 50.0, sub.Value)
}

func TestValuationScorer_ImprovingEarningsBonus(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	base := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(22.5),
	}})
	boosted := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(22.5),
		ForwardPE:    NewMetric(18),
	}})

	assert.Equal(t, base.Value+improvingEarningsBonus, boosted.Value)
	assert.True(t, boosted.Confidence)
}

func TestValuationScorer_BonusClampsAtHundred(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(4),
		ForwardPE:    NewMetric(3),
	}})

	assert.Equal(t, 100.0, sub.Value)
}

func TestValuationScorer_NoBonusWhenForwardHigher(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		TrailingPE:   NewMetric(22.5),
		ForwardPE:    NewMetric(30),
	}})

	assert.Equal(t, 50.0, sub.Value)
}

func TestValuationScorer_ForwardAloneStaysNeutral(t *testing.T) {
	scorer := NewValuationScorer(DefaultConfig())

	sub := scorer.Score(Input{Record: IndicatorRecord{
		CurrentPrice: 10,
		ForwardPE:    NewMetric(18),
	}})

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
}
