package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentScorer_EmptySignals(t *testing.T) {
	scorer := NewSentimentScorer(DefaultConfig())

	sub := scorer.Score(Input{})

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
}

func TestSentimentScorer_AllBullish(t *testing.T) {
	scorer := NewSentimentScorer(DefaultConfig())

	sub := scorer.Score(Input{Signals: []SentimentSignal{
		{Source: "reuters", Polarity: PolarityBullish},
		{Source: "bloomberg", Polarity: PolarityBullish},
	}})

	assert.Equal(t, 100.0, sub.Value)
	assert.True(t, sub.Confidence)
}

func TestSentimentScorer_MixedBalancesToNeutral(t *testing.T) {
	scorer := NewSentimentScorer(DefaultConfig())

	sub := scorer.Score(Input{Signals: []SentimentSignal{
		{Source: "reuters", Polarity: PolarityBullish},
		{Source: "bloomberg", Polarity: PolarityBearish},
	}})

	assert.Equal(t, 50.0, sub.Value)
}

func TestSentimentScorer_DedupesBySource(t *testing.T) {
	scorer := NewSentimentScorer(DefaultConfig())

	// Two bullish signals from one source collapse to a single averaged
	// contribution, so the bearish source balances them out.
	sub := scorer.Score(Input{Signals: []SentimentSignal{
		{Source: "reuters", Polarity: PolarityBullish},
		{Source: "Reuters", Polarity: PolarityBullish},
		{Source: "bloomberg", Polarity: PolarityBearish},
	}})

	assert.Equal(t, 50.0, sub.Value)
}

func TestSentimentScorer_OrderInsensitive(t *testing.T) {
	scorer := NewSentimentScorer(DefaultConfig())

	signals := []SentimentSignal{
		{Source: "reuters", Polarity: PolarityBullish},
		{Source: "bloomberg", Polarity: PolarityNeutral},
		{Source: "wsj", Polarity: PolarityBearish},
		{Source: "reuters", Polarity: PolarityNeutral},
	}
	reversed := make([]SentimentSignal, 0, len(signals))
	for i := len(signals) - 1; i >= 0; i-- {
		reversed = append(reversed, signals[i])
	}

	a := scorer.Score(Input{Signals: signals})
	b := scorer.Score(Input{Signals: reversed})

	assert.Equal(t, a.Value, b.Value)
	assert.Equal(t, a.Confidence, b.Confidence)
}

func TestSentimentScorer_UnknownPolaritySkipped(t *testing.T) {
	scorer := NewSentimentScorer(DefaultConfig())

	sub := scorer.Score(Input{Signals: []SentimentSignal{
		{Source: "forum", Polarity: Polarity("rocket")},
	}})

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
}
