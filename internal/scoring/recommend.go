package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// downgrades is the veto rule table. A tripped risk veto moves the verdict
// exactly one category down, never up, and Strong Sell stays put.
var downgrades = map[Category]Category{
	StrongBuy:  Buy,
	Buy:        Hold,
	Hold:       Sell,
	Sell:       StrongSell,
	StrongSell: StrongSell,
}

// Recommend maps the composite onto the configured bands, applies the risk
// veto when the risk sub-score sits below the critical floor, and builds a
// rationale from the two largest weighted contributions.
func Recommend(cfg Config, composite CompositeScore) Recommendation {
	category := categoryFor(cfg.Thresholds, composite.Value)

	vetoed := false
	for _, sub := range composite.SubScores {
		if sub.Group == GroupRisk && sub.Value < cfg.RiskVetoFloor {
			category = downgrades[category]
			vetoed = true
			break
		}
	}

	return Recommendation{
		Category:  category,
		Score:     composite.Value,
		Rationale: rationale(composite.SubScores, vetoed),
		Vetoed:    vetoed,
	}
}

// categoryFor partitions [0,100] with bands closed on the lower bound and
// exclusive on the upper.
func categoryFor(t Thresholds, score float64) Category {
	switch {
	case score >= t.StrongBuy:
		return StrongBuy
	case score >= t.Buy:
		return Buy
	case score >= t.Hold:
		return Hold
	case score >= t.Sell:
		return Sell
	default:
		return StrongSell
	}
}

func rationale(subs []SubScore, vetoed bool) string {
	if len(subs) == 0 {
		return "no contributing signals"
	}

	ranked := make([]SubScore, len(subs))
	copy(ranked, subs)
	sort.SliceStable(ranked, func(i, j int) bool {
		ci := ranked[i].Value * ranked[i].EffectiveWeight()
		cj := ranked[j].Value * ranked[j].EffectiveWeight()
		if ci != cj {
			return ci > cj
		}
		return ranked[i].Group < ranked[j].Group
	})
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}

	parts := make([]string, 0, len(ranked))
	for _, sub := range ranked {
		parts = append(parts, fmt.Sprintf("%s %.1f", sub.Group, sub.Value))
	}

	msg := "driven by " + strings.Join(parts, " and ")
	if vetoed {
		msg += "; downgraded one notch on critical risk"
	}
	return msg
}
