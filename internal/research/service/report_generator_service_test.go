package service

import (
	"testing"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSentimentSignals_JoinsArticleSource(t *testing.T) {
	target := 240.0
	newsRows := []entity.TickerNews{
		{ID: 1, Source: "reuters.com"},
		{ID: 2, Source: "bloomberg.com"},
	}
	mentions := []entity.TickerMention{
		{TickerNewsID: 1, Symbol: "NVDA", Polarity: "bullish", Note: "record revenue", PriceTarget: &target},
		{TickerNewsID: 2, Symbol: "NVDA", Polarity: "bearish", Note: "export probe"},
		{TickerNewsID: 99, Symbol: "NVDA", Polarity: "neutral"},
	}

	signals := buildSentimentSignals(newsRows, mentions)

	require.Len(t, signals, 3)
	assert.Equal(t, "reuters.com", signals[0].Source)
	assert.Equal(t, scoring.PolarityBullish, signals[0].Polarity)
	require.NotNil(t, signals[0].PriceTarget)
	assert.InDelta(t, 240.0, *signals[0].PriceTarget, 1e-9)
	assert.Equal(t, "bloomberg.com", signals[1].Source)
	assert.Equal(t, "unknown", signals[2].Source, "orphan mention falls back to unknown source")
}

func TestBuildSentimentSignals_Empty(t *testing.T) {
	assert.Nil(t, buildSentimentSignals(nil, nil))
}

func TestBuildRiskFlags_NoArticlesMeansNoAssessment(t *testing.T) {
	assert.Nil(t, buildRiskFlags(nil), "without articles there is nothing to assess")
}

func TestBuildRiskFlags_CleanArticlesAssessEmpty(t *testing.T) {
	newsRows := []entity.TickerNews{
		{ID: 1, Title: "Company posts quarterly results", RawContent: "Revenue grew modestly."},
	}

	flags := buildRiskFlags(newsRows)

	require.NotNil(t, flags, "articles were scanned, so the assessment exists")
	assert.Empty(t, flags)
}

func TestBuildRiskFlags_CollapsesPerCategory(t *testing.T) {
	newsRows := []entity.TickerNews{
		{ID: 1, Title: "Regulator opens probe", RawContent: "An investigation is under way."},
		{ID: 2, Title: "Antitrust case filed", RawContent: "The antitrust complaint widens."},
		{ID: 3, Title: "Supplier note", RawContent: "A key supplier flagged delays."},
	}

	flags := buildRiskFlags(newsRows)

	require.Len(t, flags, 2, "one flag per category")
	assert.Equal(t, scoring.RiskRegulatory, flags[0].Category)
	assert.Equal(t, scoring.SeverityHigh, flags[0].Severity, "harshest regulatory match wins")
	assert.Equal(t, scoring.RiskSupply, flags[1].Category)
	assert.Equal(t, scoring.SeverityLow, flags[1].Severity)
}
