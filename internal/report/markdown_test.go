package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-reporter/internal/scoring"
)

func TestRenderMarkdown_Layout(t *testing.T) {
	asm := NewAssembler(Options{IncludeVerdict: true})
	rpt, err := asm.Assemble(sampleInput())
	require.NoError(t, err)

	md := RenderMarkdown(rpt)

	assert.True(t, strings.HasPrefix(md, "# Equity Research Report: NVIDIA Corporation (NVDA)\n"))
	for _, title := range []string{
		SectionExecutiveSummary,
		SectionCompanySnapshot,
		SectionKeyIndicators,
		SectionNewsSentiment,
		SectionRisks,
		SectionFinalPerspective,
		SectionAnalystVerdict,
	} {
		assert.Contains(t, md, "## "+title+"\n")
	}
	assert.Contains(t, md, "Score: 68.4 / 100")
	assert.Contains(t, md, "Recommendation: Buy")
	assert.Contains(t, md, "$86.62 - $212.19")
	assert.Contains(t, md, "target $240.00")
}

func TestRenderMarkdown_ByteIdenticalOnFrozenInput(t *testing.T) {
	asm := NewAssembler(Options{IncludeVerdict: true})

	first, err := asm.Assemble(sampleInput())
	require.NoError(t, err)
	second, err := asm.Assemble(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, RenderMarkdown(first), RenderMarkdown(second))
}

func TestRenderMarkdown_DegradedStatusLine(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.Composite = scoring.CompositeScore{}
	in.Recommendation = scoring.Recommendation{Category: scoring.NoRating}
	in.StatusReason = "insufficient data to score NVDA"

	rpt, err := asm.Assemble(in)
	require.NoError(t, err)

	md := RenderMarkdown(rpt)
	assert.Contains(t, md, "_Status: degraded, insufficient data to score NVDA_")
	assert.NotContains(t, md, "## "+SectionAnalystVerdict)
}

func TestRenderMarkdown_MissingOptionalsShowNA(t *testing.T) {
	asm := NewAssembler(Options{})

	in := sampleInput()
	in.Record.TrailingPE = scoring.Metric{}
	in.Record.SMA50 = scoring.Metric{}
	in.Record.SMA200 = scoring.Metric{}
	in.Record.RSI14 = scoring.Metric{}

	rpt, err := asm.Assemble(in)
	require.NoError(t, err)

	md := RenderMarkdown(rpt)
	assert.Contains(t, md, "Trailing P/E: n/a")
	assert.Contains(t, md, "50-day SMA: n/a")
	assert.Contains(t, md, "RSI (14-day): n/a")
}
