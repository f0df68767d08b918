package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolsInTitle(t *testing.T) {
	known := []string{"NVDA", "AMD", "INTC", "BRK.B"}

	matched := symbolsInTitle("NVDA and AMD extend gains as INTC slips", known, "NVDA")
	assert.Equal(t, []string{"AMD", "INTC"}, matched, "feed symbol is excluded, others sorted")

	matched = symbolsInTitle("Berkshire BRK.B adds to position", known, "NVDA")
	assert.Equal(t, []string{"BRK.B"}, matched, "dotted symbols survive tokenizing")

	matched = symbolsInTitle("Chipmaker posts record quarter", known, "NVDA")
	assert.Empty(t, matched)
}

func TestSymbolsInTitle_NoSubstringMatches(t *testing.T) {
	known := []string{"A", "AMD"}

	// "A" must not match inside "AMD" or "gains".
	matched := symbolsInTitle("AMD gains on data center demand", known, "")
	assert.Equal(t, []string{"AMD"}, matched)
}

func TestExtractPriceTarget(t *testing.T) {
	target := extractPriceTarget("Analysts raised their price target to $240.50 after earnings")
	require.NotNil(t, target)
	assert.InDelta(t, 240.50, *target, 1e-9)

	target = extractPriceTarget("Firm sets target price of 185 for the stock")
	require.NotNil(t, target)
	assert.InDelta(t, 185.0, *target, 1e-9)

	assert.Nil(t, extractPriceTarget("Shares closed higher on strong demand"))
}
