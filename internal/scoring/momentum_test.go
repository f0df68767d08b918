package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func momentumInput(rec IndicatorRecord) Input {
	return Input{Record: rec}
}

func TestMomentumScorer_RangePosition(t *testing.T) {
	scorer := NewMomentumScorer(DefaultConfig())

	sub := scorer.Score(momentumInput(IndicatorRecord{
		Ticker:       "NVDA",
		CurrentPrice: 175.02,
		Low52W:       NewMetric(86.62),
		High52W:      NewMetric(212.19),
	}))

	// (175.02-86.62)/(212.19-86.62)*100
	assert.InDelta(t, 70.4, sub.Value, 0.01)
	assert.True(t, sub.Confidence)
	assert.Equal(t, GroupMomentum, sub.Group)
}

func TestMomentumScorer_MissingRange(t *testing.T) {
	scorer := NewMomentumScorer(DefaultConfig())

	sub := scorer.Score(momentumInput(IndicatorRecord{
		Ticker:       "NVDA",
		CurrentPrice: 175.02,
	}))

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
}

func TestMomentumScorer_ZeroWidthRange(t *testing.T) {
	scorer := NewMomentumScorer(DefaultConfig())

	sub := scorer.Score(momentumInput(IndicatorRecord{
		Ticker:       "NVDA",
		CurrentPrice: 100,
		Low52W:       NewMetric(100),
		High52W:      NewMetric(100),
	}))

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
}

func TestMomentumScorer_PriceOutsideRangeClamps(t *testing.T) {
	scorer := NewMomentumScorer(DefaultConfig())

	above := scorer.Score(momentumInput(IndicatorRecord{
		CurrentPrice: 250,
		Low52W:       NewMetric(86.62),
		High52W:      NewMetric(212.19),
	}))
	below := scorer.Score(momentumInput(IndicatorRecord{
		CurrentPrice: 50,
		Low52W:       NewMetric(86.62),
		High52W:      NewMetric(212.19),
	}))

	assert.Equal(t, 100.0, above.Value)
	assert.Equal(t, 0.0, below.Value)
	assert.True(t, above.Confidence)
}

func TestMomentumScorer_MovingAverageCues(t *testing.T) {
	scorer := NewMomentumScorer(DefaultConfig())

	base := IndicatorRecord{
		CurrentPrice: 150,
		Low52W:       NewMetric(100),
		High52W:      NewMetric(200),
	}
	plain := scorer.Score(momentumInput(base))

	aboveBoth := base
	aboveBoth.SMA50 = NewMetric(140)
	aboveBoth.SMA200 = NewMetric(120)
	bullish := scorer.Score(momentumInput(aboveBoth))

	belowBoth := base
	belowBoth.SMA50 = NewMetric(160)
	belowBoth.SMA200 = NewMetric(170)
	bearish := scorer.Score(momentumInput(belowBoth))

	assert.Equal(t, 50.0, plain.Value)
	assert.Equal(t, 60.0, bullish.Value, "price above both averages adds one step each")
	assert.Equal(t, 40.0, bearish.Value, "price below both averages subtracts one step each")
}

func TestMomentumScorer_RSICues(t *testing.T) {
	scorer := NewMomentumScorer(DefaultConfig())

	base := IndicatorRecord{
		CurrentPrice: 150,
		Low52W:       NewMetric(100),
		High52W:      NewMetric(200),
	}

	overbought := base
	overbought.RSI14 = NewMetric(75)
	oversold := base
	oversold.RSI14 = NewMetric(25)
	midRange := base
	midRange.RSI14 = NewMetric(55)

	assert.Equal(t, 45.0, scorer.Score(momentumInput(overbought)).Value)
	assert.Equal(t, 55.0, scorer.Score(momentumInput(oversold)).Value)
	assert.Equal(t, 50.0, scorer.Score(momentumInput(midRange)).Value)
}
