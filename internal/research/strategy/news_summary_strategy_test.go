package strategy

import (
	"testing"
	"time"

	"equity-reporter/internal/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewsSummary_MixedMentions(t *testing.T) {
	early := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 3, 16, 0, 0, 0, time.UTC)

	rankedNews := []entity.TickerNews{
		{Title: "NVDA beats expectations on record revenue", PublishedAt: &late, Keywords: pq.StringArray{"export control"}},
		{Title: "Regulator opens probe into chip exports", PublishedAt: &early, Keywords: pq.StringArray{"probe", "export control"}},
	}
	mentions := []entity.TickerMention{
		{Symbol: "NVDA", Polarity: "bullish"},
		{Symbol: "NVDA", Polarity: "bullish"},
		{Symbol: "NVDA", Polarity: "bearish"},
		{Symbol: "NVDA", Polarity: "neutral"},
	}

	summary := buildNewsSummary("NVDA", rankedNews, mentions)

	assert.Equal(t, "NVDA", summary.Symbol)
	assert.Equal(t, 2, summary.ArticleCount)
	assert.Equal(t, 2, summary.BullishCount)
	assert.Equal(t, 1, summary.BearishCount)
	assert.Equal(t, 1, summary.NeutralCount)
	assert.InDelta(t, 0.25, summary.MeanPolarity, 1e-9)
	assert.Equal(t, "bullish", summary.Polarity)
	assert.Equal(t, pq.StringArray{"export control", "probe"}, summary.KeyIssues, "issues deduped and sorted")
	assert.Equal(t, early, summary.SummaryStart)
	assert.Equal(t, late, summary.SummaryEnd)
	assert.Contains(t, summary.ShortSummary, "2 articles analyzed")
	assert.Contains(t, summary.ShortSummary, "tone bullish")
	assert.Contains(t, summary.ShortSummary, "NVDA beats expectations")
	assert.NotEmpty(t, summary.HashIdentifier)
}

func TestBuildNewsSummary_NoMentionsIsNeutral(t *testing.T) {
	published := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	rankedNews := []entity.TickerNews{
		{Title: "Company schedules earnings call", PublishedAt: &published},
	}

	summary := buildNewsSummary("AMD", rankedNews, nil)

	assert.Equal(t, 0.0, summary.MeanPolarity)
	assert.Equal(t, "neutral", summary.Polarity)
	assert.Zero(t, summary.BullishCount)
	assert.Zero(t, summary.BearishCount)
	assert.Zero(t, summary.NeutralCount)
	assert.Empty(t, summary.KeyIssues)
}

func TestBuildNewsSummary_HashIsStable(t *testing.T) {
	published := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	rankedNews := []entity.TickerNews{
		{Title: "Company schedules earnings call", PublishedAt: &published},
	}

	first := buildNewsSummary("AMD", rankedNews, nil)
	second := buildNewsSummary("AMD", rankedNews, nil)

	require.NotEmpty(t, first.HashIdentifier)
	assert.Equal(t, first.HashIdentifier, second.HashIdentifier,
		"same window and article set must hash identically")
}
