package scoring

const (
	momentumCueStep = 5.0
	rsiOverbought   = 70.0
	rsiOversold     = 30.0
)

// MomentumScorer scores the position of the current price inside the
// 52-week range, nudged by moving-average and RSI cues when those fields
// are present.
type MomentumScorer struct {
	cfg Config
}

func NewMomentumScorer(cfg Config) *MomentumScorer {
	return &MomentumScorer{cfg: cfg}
}

func (s *MomentumScorer) Group() Group {
	return GroupMomentum
}

// Score computes (price - low) / (high - low) clamped to [0,1] and scaled
// to 100. A missing or zero-width range yields the neutral default. Prices
// outside the range clamp rather than fail since the range may be stale.
func (s *MomentumScorer) Score(in Input) SubScore {
	rec := in.Record
	if !rec.Low52W.Valid || !rec.High52W.Valid {
		return neutral(GroupMomentum, s.cfg.Weights.Momentum)
	}
	width := rec.High52W.Value - rec.Low52W.Value
	if width <= 0 {
		return neutral(GroupMomentum, s.cfg.Weights.Momentum)
	}

	value := clamp((rec.CurrentPrice-rec.Low52W.Value)/width, 0, 1) * 100

	if rec.SMA50.Valid {
		if rec.CurrentPrice > rec.SMA50.Value {
			value += momentumCueStep
		} else if rec.CurrentPrice < rec.SMA50.Value {
			value -= momentumCueStep
		}
	}
	if rec.SMA200.Valid {
		if rec.CurrentPrice > rec.SMA200.Value {
			value += momentumCueStep
		} else if rec.CurrentPrice < rec.SMA200.Value {
			value -= momentumCueStep
		}
	}
	if rec.RSI14.Valid {
		if rec.RSI14.Value >= rsiOverbought {
			value -= momentumCueStep
		} else if rec.RSI14.Value <= rsiOversold {
			value += momentumCueStep
		}
	}

	return SubScore{
		Group:      GroupMomentum,
		Value:      clamp(value, 0, 100),
		Weight:     s.cfg.Weights.Momentum,
		Confidence: true,
	}
}
