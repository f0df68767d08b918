package scoring

// ValuationScorer maps trailing P/E against a sector reference band. A P/E
// at or below the band floor caps the score at 100, at or above the ceiling
// it floors at 0, and positions between fall off linearly. A forward P/E
// below trailing signals improving earnings and adds a small bonus.
type ValuationScorer struct {
	cfg Config
}

// improvingEarningsBonus is added when the forward P/E sits below trailing.
const improvingEarningsBonus = 5.0

func NewValuationScorer(cfg Config) *ValuationScorer {
	return &ValuationScorer{cfg: cfg}
}

func (s *ValuationScorer) Group() Group {
	return GroupValuation
}

// Score treats an absent or non-positive trailing P/E as missing data and
// emits the neutral default with confidence=false.
func (s *ValuationScorer) Score(in Input) SubScore {
	pe := in.Record.TrailingPE
	if !pe.Valid || pe.Value <= 0 {
		return neutral(GroupValuation, s.cfg.Weights.Valuation)
	}

	band := s.cfg.BandFor(in.Record.Sector)
	pos := (band.High - pe.Value) / (band.High - band.Low)
	value := clamp(pos, 0, 1) * 100

	// The bonus needs a positive trailing P/E to compare against, so it can
	// never turn the absent-P/E neutral default into a scored value.
	if fpe := in.Record.ForwardPE; fpe.Valid && fpe.Value > 0 && fpe.Value < pe.Value {
		value = clamp(value+improvingEarningsBonus, 0, 100)
	}

	return SubScore{
		Group:      GroupValuation,
		Value:      value,
		Weight:     s.cfg.Weights.Valuation,
		Confidence: true,
	}
}
