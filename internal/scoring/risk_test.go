package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskScorer_NoAssessment(t *testing.T) {
	scorer := NewRiskScorer(DefaultConfig())

	sub := scorer.Score(Input{Risks: nil})

	assert.Equal(t, 50.0, sub.Value)
	assert.False(t, sub.Confidence)
}

func TestRiskScorer_AssessedClean(t *testing.T) {
	scorer := NewRiskScorer(DefaultConfig())

	sub := scorer.Score(Input{Risks: []RiskFlag{}})

	assert.Equal(t, 100.0, sub.Value)
	assert.True(t, sub.Confidence)
}

func TestRiskScorer_SeverityTiers(t *testing.T) {
	scorer := NewRiskScorer(DefaultConfig())

	sub := scorer.Score(Input{Risks: []RiskFlag{
		{Category: RiskRegulatory, Severity: SeverityHigh},
		{Category: RiskSupply, Severity: SeverityMedium},
		{Category: RiskMacro, Severity: SeverityLow},
	}})

	// 100 - (25 + 12 + 6)
	assert.Equal(t, 57.0, sub.Value)
	assert.True(t, sub.Confidence)
}

func TestRiskScorer_HeavyFlagsFloorAtZero(t *testing.T) {
	scorer := NewRiskScorer(DefaultConfig())

	sub := scorer.Score(Input{Risks: []RiskFlag{
		{Category: RiskRegulatory, Severity: SeverityHigh},
		{Category: RiskSupply, Severity: SeverityHigh},
		{Category: RiskCompetitive, Severity: SeverityHigh},
		{Category: RiskMacro, Severity: SeverityHigh},
		{Category: RiskMacro, Severity: SeverityHigh},
	}})

	assert.Equal(t, 0.0, sub.Value)
}
