package scoring

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func richInput() Input {
	return Input{
		Record: IndicatorRecord{
			Ticker:       "NVDA",
			Sector:       "technology",
			CurrentPrice: 175.02,
			MarketCap:    4.2e12,
			TrailingPE:   NewMetric(36.5),
			Low52W:       NewMetric(86.62),
			High52W:      NewMetric(212.19),
		},
		Signals: []SentimentSignal{
			{Source: "reuters", Polarity: PolarityBullish, Note: "data-center demand"},
			{Source: "bloomberg", Polarity: PolarityNeutral},
		},
		Risks: []RiskFlag{
			{Category: RiskRegulatory, Severity: SeverityMedium, Detail: "export controls"},
		},
	}
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Momentum = 0

	_, err := NewEngine(cfg)
	require.Error(t, err)
}

func TestEngine_Evaluate(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	outcome, err := engine.Evaluate(context.Background(), richInput())
	require.NoError(t, err)

	require.Len(t, outcome.Composite.SubScores, 4)
	for _, sub := range outcome.Composite.SubScores {
		assert.True(t, sub.Confidence, "group %s scored from real data", sub.Group)
		assert.GreaterOrEqual(t, sub.Value, 0.0)
		assert.LessOrEqual(t, sub.Value, 100.0)
	}
	assert.NotEmpty(t, outcome.Recommendation.Category)
	assert.NotEmpty(t, outcome.Recommendation.Rationale)
	assert.Equal(t, outcome.Composite.Value, outcome.Recommendation.Score)
}

func TestEngine_MandatoryOnlyInputScoresFifty(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	outcome, err := engine.Evaluate(context.Background(), Input{
		Record: IndicatorRecord{
			Ticker:       "MSFT",
			CurrentPrice: 420.5,
			MarketCap:    3.1e12,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, outcome.Composite.Value)
	assert.Equal(t, Hold, outcome.Recommendation.Category)
	for _, sub := range outcome.Composite.SubScores {
		assert.False(t, sub.Confidence, "group %s defaulted", sub.Group)
	}
}

func TestEngine_AbsentPEHalvesValuationWeight(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	withPE := richInput()
	withoutPE := richInput()
	withoutPE.Record.TrailingPE = Metric{}

	a, err := engine.Evaluate(context.Background(), withPE)
	require.NoError(t, err)
	b, err := engine.Evaluate(context.Background(), withoutPE)
	require.NoError(t, err)

	delta := a.Composite.WeightSum - b.Composite.WeightSum
	assert.InDelta(t, DefaultConfig().Weights.Valuation/2, delta, 1e-9)

	for _, sub := range b.Composite.SubScores {
		if sub.Group == GroupValuation {
			assert.Equal(t, 50.0, sub.Value)
			assert.False(t, sub.Confidence)
		}
	}
}

func TestEngine_EvaluateIsIdempotent(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	in := richInput()

	first, err := engine.Evaluate(context.Background(), in)
	require.NoError(t, err)
	second, err := engine.Evaluate(context.Background(), in)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical frozen input yields a byte-identical outcome")
}

func TestEngine_CanceledContext(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Evaluate(ctx, richInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_RiskVetoAppliesEndToEnd(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	in := richInput()
	in.Risks = []RiskFlag{
		{Category: RiskRegulatory, Severity: SeverityHigh},
		{Category: RiskSupply, Severity: SeverityHigh},
		{Category: RiskCompetitive, Severity: SeverityHigh},
		{Category: RiskMacro, Severity: SeverityHigh},
	}

	outcome, err := engine.Evaluate(context.Background(), in)
	require.NoError(t, err)

	unvetoed := categoryFor(engine.Config().Thresholds, outcome.Composite.Value)
	assert.True(t, outcome.Recommendation.Vetoed)
	assert.Equal(t, downgrades[unvetoed], outcome.Recommendation.Category)
}
