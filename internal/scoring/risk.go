package scoring

// Penalty applied per risk flag, by severity tier.
const (
	penaltyLow    = 6.0
	penaltyMedium = 12.0
	penaltyHigh   = 25.0
)

// RiskScorer emits an inverse score: more flags and harsher tiers push the
// value toward 0. A nil risk slice means no assessment was supplied and
// yields the neutral default; an empty non-nil slice means the assessment
// ran and flagged nothing, which scores a clean 100.
type RiskScorer struct {
	cfg Config
}

func NewRiskScorer(cfg Config) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

func (s *RiskScorer) Group() Group {
	return GroupRisk
}

func (s *RiskScorer) Score(in Input) SubScore {
	if in.Risks == nil {
		return neutral(GroupRisk, s.cfg.Weights.Risk)
	}

	var total float64
	for _, flag := range in.Risks {
		total += severityPenalty(flag.Severity)
	}

	return SubScore{
		Group:      GroupRisk,
		Value:      clamp(100-total, 0, 100),
		Weight:     s.cfg.Weights.Risk,
		Confidence: true,
	}
}

func severityPenalty(severity RiskSeverity) float64 {
	switch severity {
	case SeverityHigh:
		return penaltyHigh
	case SeverityMedium:
		return penaltyMedium
	default:
		return penaltyLow
	}
}
