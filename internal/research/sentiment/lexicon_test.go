package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"equity-reporter/internal/scoring"
)

func TestClassify_Bullish(t *testing.T) {
	polarity := Classify("NVIDIA beats estimates on record revenue as data-center demand surges")
	assert.Equal(t, scoring.PolarityBullish, polarity)
}

func TestClassify_Bearish(t *testing.T) {
	polarity := Classify("Chipmaker cuts guidance and warns of weak demand amid layoffs")
	assert.Equal(t, scoring.PolarityBearish, polarity)
}

func TestClassify_NeutralOnNoHits(t *testing.T) {
	polarity := Classify("The company will report quarterly results next Wednesday")
	assert.Equal(t, scoring.PolarityNeutral, polarity)
}

func TestClassify_NeutralOnTie(t *testing.T) {
	polarity := Classify("Shares rally after lawsuit settlement")
	assert.Equal(t, scoring.PolarityNeutral, polarity)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("STRONG DEMAND LIFTS OUTLOOK"), Classify("strong demand lifts outlook"))
}

func TestDetectFlags_SingleCategory(t *testing.T) {
	flags := DetectFlags("Regulators open an antitrust probe into the acquisition")

	assert.Len(t, flags, 1)
	assert.Equal(t, scoring.RiskRegulatory, flags[0].Category)
	assert.Equal(t, scoring.SeverityHigh, flags[0].Severity, "antitrust outranks probe")
}

func TestDetectFlags_MultipleCategoriesSorted(t *testing.T) {
	flags := DetectFlags("Tariff pressure and a supply chain shortage weigh on rivals")

	assert.Len(t, flags, 3)
	assert.Equal(t, scoring.RiskCompetitive, flags[0].Category)
	assert.Equal(t, scoring.RiskMacro, flags[1].Category)
	assert.Equal(t, scoring.RiskSupply, flags[2].Category)
	assert.Equal(t, scoring.SeverityHigh, flags[2].Severity, "shortage outranks supply chain")
}

func TestDetectFlags_CleanText(t *testing.T) {
	flags := DetectFlags("Company announces new product line for consumer market")
	assert.Empty(t, flags)
}

func TestMergeFlags_KeepsHarshestPerCategory(t *testing.T) {
	merged := MergeFlags([]scoring.RiskFlag{
		{Category: scoring.RiskMacro, Severity: scoring.SeverityLow, Detail: "currency headwind"},
		{Category: scoring.RiskMacro, Severity: scoring.SeverityHigh, Detail: "recession"},
		{Category: scoring.RiskSupply, Severity: scoring.SeverityMedium, Detail: "supply chain"},
	})

	assert.Len(t, merged, 2)
	assert.Equal(t, scoring.RiskMacro, merged[0].Category)
	assert.Equal(t, scoring.SeverityHigh, merged[0].Severity)
	assert.Equal(t, scoring.RiskSupply, merged[1].Category)
}

func TestMergeFlags_Empty(t *testing.T) {
	assert.Empty(t, MergeFlags(nil))
}
