package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-reporter/internal/scoring"
)

func sampleInput() Input {
	target := 240.0
	return Input{
		CompanyName: "NVIDIA Corporation",
		Record: scoring.IndicatorRecord{
			Ticker:       "NVDA",
			Sector:       "technology",
			CurrentPrice: 175.02,
			MarketCap:    4.2e12,
			TrailingPE:   scoring.NewMetric(36.5),
			Low52W:       scoring.NewMetric(86.62),
			High52W:      scoring.NewMetric(212.19),
		},
		Signals: []scoring.SentimentSignal{
			{Source: "reuters", Polarity: scoring.PolarityBullish, Note: "data-center demand", PriceTarget: &target},
			{Source: "bloomberg", Polarity: scoring.PolarityNeutral, Note: "awaiting guidance"},
		},
		Risks: []scoring.RiskFlag{
			{Category: scoring.RiskRegulatory, Severity: scoring.SeverityMedium, Detail: "export controls"},
		},
		Composite: scoring.CompositeScore{
			Value: 68.4,
			SubScores: []scoring.SubScore{
				{Group: scoring.GroupMomentum, Value: 70.4, Weight: 0.3, Confidence: true},
				{Group: scoring.GroupValuation, Value: 50, Weight: 0.3, Confidence: true},
			},
			WeightSum: 0.6,
		},
		Recommendation: scoring.Recommendation{
			Category:  scoring.Buy,
			Score:     68.4,
			Rationale: "driven by momentum 70.4 and valuation 50.0",
		},
		GeneratedAt: time.Date(2026, 8, 21, 16, 30, 0, 0, time.UTC),
	}
}

func TestAssemble_SectionOrder(t *testing.T) {
	asm := NewAssembler(Options{})

	rpt, err := asm.Assemble(sampleInput())
	require.NoError(t, err)

	titles := make([]string, 0, len(rpt.Sections))
	for _, s := range rpt.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		SectionExecutiveSummary,
		SectionCompanySnapshot,
		SectionKeyIndicators,
		SectionNewsSentiment,
		SectionRisks,
		SectionFinalPerspective,
	}, titles)
	assert.Equal(t, StatusOK, rpt.Status)
	assert.Nil(t, rpt.Verdict, "verdict inclusion is off by default")
}

func TestAssemble_VerdictBlock(t *testing.T) {
	asm := NewAssembler(Options{IncludeVerdict: true})

	rpt, err := asm.Assemble(sampleInput())
	require.NoError(t, err)

	require.NotNil(t, rpt.Verdict)
	assert.Equal(t, 68.4, rpt.Verdict.Score)
	assert.Equal(t, scoring.Buy, rpt.Verdict.Recommendation)
	assert.NotEmpty(t, rpt.Verdict.Reasoning)
}

func TestAssemble_MissingTicker(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.Record.Ticker = ""

	_, err := asm.Assemble(in)
	var incomplete *IncompleteReportError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "indicators.ticker", incomplete.Field)
}

func TestAssemble_MissingTimestamp(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.GeneratedAt = time.Time{}

	_, err := asm.Assemble(in)
	var incomplete *IncompleteReportError
	require.ErrorAs(t, err, &incomplete)
}

func TestAssemble_MissingComposite(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.Composite = scoring.CompositeScore{}

	_, err := asm.Assemble(in)
	var incomplete *IncompleteReportError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "composite", incomplete.Field)
}

func TestAssemble_DegradedRun(t *testing.T) {
	asm := NewAssembler(Options{IncludeVerdict: true})

	in := sampleInput()
	in.Composite = scoring.CompositeScore{}
	in.Recommendation = scoring.Recommendation{Category: scoring.NoRating}
	in.StatusReason = "insufficient data to score NVDA"

	rpt, err := asm.Assemble(in)
	require.NoError(t, err, "a degraded run still assembles")

	assert.Equal(t, StatusDegraded, rpt.Status)
	assert.Nil(t, rpt.Verdict, "no verdict without a composite")
	assert.Len(t, rpt.Sections, 6)
	assert.Contains(t, rpt.Sections[5].Lines[0], "No rating was assigned")
}

func TestAssemble_SignalOrderDoesNotChangeOutput(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	reversed := sampleInput()
	reversed.Signals = []scoring.SentimentSignal{in.Signals[1], in.Signals[0]}

	a, err := asm.Assemble(in)
	require.NoError(t, err)
	b, err := asm.Assemble(reversed)
	require.NoError(t, err)

	assert.Equal(t, a.Sections, b.Sections)
	assert.Equal(t, a.Signals, b.Signals)
}

func TestAssemble_OwnsCopies(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	rpt, err := asm.Assemble(in)
	require.NoError(t, err)

	// Mutating the caller's slices must not reach into the report.
	in.Signals[0].Source = "mutated"
	in.Composite.SubScores[0].Value = 0

	assert.NotEqual(t, "mutated", rpt.Signals[0].Source)
	assert.Equal(t, 70.4, rpt.Composite.SubScores[0].Value)
}

func TestAssemble_NewsDigestLeadsNewsSection(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.NewsDigest = "Data-center demand keeps coverage bullish ahead of guidance."

	rpt, err := asm.Assemble(in)
	require.NoError(t, err)

	news := rpt.Sections[3]
	require.Equal(t, SectionNewsSentiment, news.Title)
	require.NotEmpty(t, news.Lines)
	assert.Equal(t, "Digest: Data-center demand keeps coverage bullish ahead of guidance.", news.Lines[0])
	assert.Contains(t, news.Lines[1], "bloomberg")

	in.NewsDigest = ""
	rpt, err = asm.Assemble(in)
	require.NoError(t, err)
	assert.NotContains(t, rpt.Sections[3].Lines[0], "Digest:")
}

func TestAssemble_RiskVetoNoted(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.Recommendation.Vetoed = true
	in.Recommendation.Category = scoring.Hold

	rpt, err := asm.Assemble(in)
	require.NoError(t, err)

	perspective := rpt.Sections[5]
	assert.Contains(t, perspective.Lines[len(perspective.Lines)-1], "one category lower")
}
