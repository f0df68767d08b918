package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_WeightedMean(t *testing.T) {
	composite, err := Aggregate("NVDA", []SubScore{
		{Group: GroupValuation, Value: 80, Weight: 0.5, Confidence: true},
		{Group: GroupMomentum, Value: 40, Weight: 0.5, Confidence: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 60.0, composite.Value)
	assert.InDelta(t, 1.0, composite.WeightSum, 1e-9)
}

func TestAggregate_HalfWeightOnLowConfidence(t *testing.T) {
	full, err := Aggregate("NVDA", []SubScore{
		{Group: GroupValuation, Value: 50, Weight: 0.3, Confidence: true},
		{Group: GroupMomentum, Value: 70, Weight: 0.3, Confidence: true},
	})
	require.NoError(t, err)

	halved, err := Aggregate("NVDA", []SubScore{
		{Group: GroupValuation, Value: 50, Weight: 0.3, Confidence: false},
		{Group: GroupMomentum, Value: 70, Weight: 0.3, Confidence: true},
	})
	require.NoError(t, err)

	// The defaulted sub-score carries exactly half its configured weight.
	assert.InDelta(t, 0.15, full.WeightSum-halved.WeightSum, 1e-9)
	assert.Greater(t, halved.Value, full.Value, "down-weighting the lower score lifts the mean")
}

func TestAggregate_AllNeutralDefaults(t *testing.T) {
	w := DefaultConfig().Weights
	composite, err := Aggregate("NVDA", []SubScore{
		{Group: GroupValuation, Value: 50, Weight: w.Valuation, Confidence: false},
		{Group: GroupMomentum, Value: 50, Weight: w.Momentum, Confidence: false},
		{Group: GroupSentiment, Value: 50, Weight: w.Sentiment, Confidence: false},
		{Group: GroupRisk, Value: 50, Weight: w.Risk, Confidence: false},
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, composite.Value)
}

func TestAggregate_ValueOutOfRange(t *testing.T) {
	_, err := Aggregate("NVDA", []SubScore{
		{Group: GroupMomentum, Value: 104.2, Weight: 0.3, Confidence: true},
	})

	var iv *InvariantViolation
	require.ErrorAs(t, err, &iv)
	assert.Equal(t, GroupMomentum, iv.Group)
}

func TestAggregate_WeightOutOfRange(t *testing.T) {
	_, err := Aggregate("NVDA", []SubScore{
		{Group: GroupRisk, Value: 50, Weight: 1.5, Confidence: true},
	})

	var iv *InvariantViolation
	require.ErrorAs(t, err, &iv)
}

func TestAggregate_NoSubScores(t *testing.T) {
	_, err := Aggregate("NVDA", nil)

	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "NVDA", insufficient.Ticker)
}

func TestAggregate_RoundsHalfDown(t *testing.T) {
	// 62.25 and 62.75 are exact in binary, so the half lands precisely on
	// the rounding boundary.
	down, err := Aggregate("NVDA", []SubScore{
		{Group: GroupMomentum, Value: 62.25, Weight: 1, Confidence: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 62.2, down.Value)

	up, err := Aggregate("NVDA", []SubScore{
		{Group: GroupMomentum, Value: 62.75, Weight: 1, Confidence: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 62.7, up.Value)
}

func TestAggregate_SubScoresSortedByGroup(t *testing.T) {
	composite, err := Aggregate("NVDA", []SubScore{
		{Group: GroupSentiment, Value: 60, Weight: 0.25, Confidence: true},
		{Group: GroupMomentum, Value: 70, Weight: 0.3, Confidence: true},
		{Group: GroupValuation, Value: 40, Weight: 0.3, Confidence: true},
		{Group: GroupRisk, Value: 80, Weight: 0.15, Confidence: true},
	})
	require.NoError(t, err)

	groups := make([]Group, 0, len(composite.SubScores))
	for _, sub := range composite.SubScores {
		groups = append(groups, sub.Group)
	}
	assert.Equal(t, []Group{GroupMomentum, GroupRisk, GroupSentiment, GroupValuation}, groups)
}
