package scoring

import (
	"fmt"
	"sort"
)

// Aggregate combines sub-scores into the composite. Every sub-score first
// passes the range invariants; a value outside [0,100] or a weight outside
// (0,1] is an InvariantViolation and never retried. Low-confidence
// sub-scores carry half their configured weight. The composite is rounded
// to one decimal place with exact halves resolving downward.
func Aggregate(ticker string, subs []SubScore) (CompositeScore, error) {
	for _, sub := range subs {
		if sub.Value < 0 || sub.Value > 100 {
			return CompositeScore{}, &InvariantViolation{
				Group:  sub.Group,
				Reason: fmt.Sprintf("value %v outside [0,100]", sub.Value),
			}
		}
		if sub.Weight <= 0 || sub.Weight > 1 {
			return CompositeScore{}, &InvariantViolation{
				Group:  sub.Group,
				Reason: fmt.Sprintf("weight %v outside (0,1]", sub.Weight),
			}
		}
	}

	var weighted, weightSum float64
	for _, sub := range subs {
		w := sub.EffectiveWeight()
		weighted += sub.Value * w
		weightSum += w
	}
	if weightSum <= 0 {
		return CompositeScore{}, &InsufficientDataError{Ticker: ticker}
	}

	sorted := make([]SubScore, len(subs))
	copy(sorted, subs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Group < sorted[j].Group
	})

	return CompositeScore{
		Value:     roundHalfDown(weighted / weightSum),
		SubScores: sorted,
		WeightSum: weightSum,
	}, nil
}
