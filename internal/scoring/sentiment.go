package scoring

import "strings"

// SentimentScorer folds classified signals into a score centered on 50.
// Signals are grouped by source first, so one noisy source contributes a
// single averaged polarity per run and signal order never matters.
type SentimentScorer struct {
	cfg Config
}

func NewSentimentScorer(cfg Config) *SentimentScorer {
	return &SentimentScorer{cfg: cfg}
}

func (s *SentimentScorer) Group() Group {
	return GroupSentiment
}

// Score maps the mean polarity in [-1,1] to 50 + 50*mean. An empty signal
// list yields the neutral default with confidence=false.
func (s *SentimentScorer) Score(in Input) SubScore {
	bySource := make(map[string][]float64)
	for _, sig := range in.Signals {
		v, ok := polarityValue(sig.Polarity)
		if !ok {
			continue
		}
		source := strings.ToLower(strings.TrimSpace(sig.Source))
		bySource[source] = append(bySource[source], v)
	}
	if len(bySource) == 0 {
		return neutral(GroupSentiment, s.cfg.Weights.Sentiment)
	}

	var sum float64
	for _, vals := range bySource {
		var sourceSum float64
		for _, v := range vals {
			sourceSum += v
		}
		sum += sourceSum / float64(len(vals))
	}
	mean := sum / float64(len(bySource))

	return SubScore{
		Group:      GroupSentiment,
		Value:      clamp(neutralScore+neutralScore*mean, 0, 100),
		Weight:     s.cfg.Weights.Sentiment,
		Confidence: true,
	}
}

func polarityValue(p Polarity) (float64, bool) {
	switch p {
	case PolarityBullish:
		return 1, true
	case PolarityBearish:
		return -1, true
	case PolarityNeutral:
		return 0, true
	default:
		return 0, false
	}
}
