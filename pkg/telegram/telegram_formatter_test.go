package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-reporter/internal/report"
	"equity-reporter/internal/scoring"
)

func TestFormatNewsDigest_Empty(t *testing.T) {
	messages := FormatNewsDigest(nil)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "No ticker news summaries")
}

func TestFormatNewsDigest_SingleMessage(t *testing.T) {
	messages := FormatNewsDigest([]DigestEntry{
		{
			Symbol:       "NVDA",
			ShortSummary: "Data-center demand keeps climbing.",
			Polarity:     "bullish",
			MeanPolarity: 0.67,
			ArticleCount: 3,
			KeyIssues:    []string{"export controls"},
		},
	})

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "Daily Ticker News Digest")
	assert.Contains(t, messages[0], "NVDA")
	assert.Contains(t, messages[0], "😊")
	assert.Contains(t, messages[0], "+0.67")
	assert.Contains(t, messages[0], "export controls")
}

func TestFormatNewsDigest_SplitsLongOutput(t *testing.T) {
	long := strings.Repeat("market context sentence. ", 40)
	entries := make([]DigestEntry, 12)
	for i := range entries {
		entries[i] = DigestEntry{
			Symbol:       "TICK",
			ShortSummary: long,
			Polarity:     "neutral",
			ArticleCount: 1,
		}
	}

	messages := FormatNewsDigest(entries)

	require.Greater(t, len(messages), 1)
	for _, msg := range messages {
		assert.LessOrEqual(t, len(msg), 4090+len(long)+64, "each part stays near the limit")
	}
	assert.Contains(t, messages[1], "Part 2")
}

func TestSplitMessage_ShortTextSingleChunk(t *testing.T) {
	messages := SplitMessage("## Executive Summary\n\nOne short section.\n")
	require.Len(t, messages, 1)
	assert.Equal(t, "## Executive Summary\n\nOne short section.\n", messages[0])
}

func TestSplitMessage_BreaksOnLineBoundaries(t *testing.T) {
	line := strings.Repeat("x", 100) + "\n"
	doc := strings.Repeat(line, 120)

	messages := SplitMessage(doc)

	require.Greater(t, len(messages), 1)
	for _, msg := range messages {
		assert.LessOrEqual(t, len(msg), 4090)
		assert.True(t, strings.HasSuffix(msg, "\n"), "chunks end at a line break")
	}
	assert.Equal(t, doc, strings.Join(messages, ""), "splitting loses no content")
}

func TestFormatReportMessage(t *testing.T) {
	rpt := &report.Report{
		Ticker:      "NVDA",
		Status:      report.StatusOK,
		GeneratedAt: time.Date(2026, 8, 21, 16, 30, 0, 0, time.UTC),
		Composite: scoring.CompositeScore{
			Value: 68.4,
			SubScores: []scoring.SubScore{
				{Group: scoring.GroupMomentum, Value: 70.4, Weight: 0.3, Confidence: true},
				{Group: scoring.GroupValuation, Value: 50, Weight: 0.3, Confidence: false},
			},
		},
		Recommendation: scoring.Recommendation{
			Category:  scoring.Buy,
			Score:     68.4,
			Rationale: "driven by momentum 70.4 and valuation 50.0",
		},
	}

	msg := FormatReportMessage(rpt)

	assert.Contains(t, msg, "Equity Report: NVDA")
	assert.Contains(t, msg, "🟢 Recommendation: **Buy**")
	assert.Contains(t, msg, "68.4/100")
	assert.Contains(t, msg, "momentum: 70.4")
	assert.Contains(t, msg, "defaulted")
}

func TestFormatReportMessage_Degraded(t *testing.T) {
	rpt := &report.Report{
		Ticker:         "MSFT",
		Status:         report.StatusDegraded,
		StatusReason:   "insufficient data to score MSFT",
		GeneratedAt:    time.Date(2026, 8, 21, 16, 30, 0, 0, time.UTC),
		Recommendation: scoring.Recommendation{Category: scoring.NoRating},
	}

	msg := FormatReportMessage(rpt)

	assert.Contains(t, msg, "⚪ Recommendation: **No Rating**")
	assert.Contains(t, msg, "insufficient data")
	assert.NotContains(t, msg, "Signal Breakdown")
}

func TestFormatWatchlistAlert(t *testing.T) {
	msg := FormatWatchlistAlert(PriceAbove, "NVDA", 213.5, 210.0, time.Date(2026, 8, 21, 16, 0, 0, 0, time.UTC).Unix())

	assert.Contains(t, msg, "[NVDA] Upper Threshold Crossed!")
	assert.Contains(t, msg, "213.50")
	assert.Contains(t, msg, "210.00")
}
