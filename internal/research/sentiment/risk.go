package sentiment

import (
	"sort"
	"strings"

	"equity-reporter/internal/scoring"
)

type keywordRule struct {
	term     string
	severity scoring.RiskSeverity
}

var riskLexicon = map[string][]keywordRule{
	scoring.RiskRegulatory: {
		{term: "antitrust", severity: scoring.SeverityHigh},
		{term: "export control", severity: scoring.SeverityHigh},
		{term: "export restriction", severity: scoring.SeverityHigh},
		{term: "lawsuit", severity: scoring.SeverityMedium},
		{term: "regulator", severity: scoring.SeverityMedium},
		{term: "probe", severity: scoring.SeverityMedium},
		{term: "investigation", severity: scoring.SeverityMedium},
		{term: "fined", severity: scoring.SeverityLow},
		{term: "compliance", severity: scoring.SeverityLow},
	},
	scoring.RiskSupply: {
		{term: "shortage", severity: scoring.SeverityHigh},
		{term: "supply chain", severity: scoring.SeverityMedium},
		{term: "production delay", severity: scoring.SeverityMedium},
		{term: "capacity constraint", severity: scoring.SeverityMedium},
		{term: "supplier", severity: scoring.SeverityLow},
	},
	scoring.RiskCompetitive: {
		{term: "price war", severity: scoring.SeverityHigh},
		{term: "market share loss", severity: scoring.SeverityHigh},
		{term: "competition", severity: scoring.SeverityMedium},
		{term: "rival", severity: scoring.SeverityLow},
		{term: "competitor", severity: scoring.SeverityLow},
	},
	scoring.RiskMacro: {
		{term: "recession", severity: scoring.SeverityHigh},
		{term: "tariff", severity: scoring.SeverityMedium},
		{term: "inflation", severity: scoring.SeverityMedium},
		{term: "interest rate", severity: scoring.SeverityMedium},
		{term: "currency headwind", severity: scoring.SeverityLow},
	},
}

var severityRank = map[scoring.RiskSeverity]int{
	scoring.SeverityLow:    1,
	scoring.SeverityMedium: 2,
	scoring.SeverityHigh:   3,
}

// DetectFlags scans the text against every category lexicon and emits at
// most one flag per category, carrying the harshest severity matched. The
// result is sorted by category.
func DetectFlags(text string) []scoring.RiskFlag {
	lowered := strings.ToLower(text)

	var flags []scoring.RiskFlag
	for category, rules := range riskLexicon {
		var best *scoring.RiskFlag
		for _, rule := range rules {
			if !strings.Contains(lowered, rule.term) {
				continue
			}
			if best == nil || severityRank[rule.severity] > severityRank[best.Severity] {
				best = &scoring.RiskFlag{
					Category: category,
					Severity: rule.severity,
					Detail:   rule.term,
				}
			}
		}
		if best != nil {
			flags = append(flags, *best)
		}
	}

	sort.Slice(flags, func(i, j int) bool {
		return flags[i].Category < flags[j].Category
	})
	return flags
}

// MergeFlags collapses flags from many articles into one flag per category,
// keeping the harshest severity seen. The result is sorted by category.
func MergeFlags(flags []scoring.RiskFlag) []scoring.RiskFlag {
	byCategory := make(map[string]scoring.RiskFlag)
	for _, flag := range flags {
		current, ok := byCategory[flag.Category]
		if !ok || severityRank[flag.Severity] > severityRank[current.Severity] {
			byCategory[flag.Category] = flag
		}
	}

	merged := make([]scoring.RiskFlag, 0, len(byCategory))
	for _, flag := range byCategory {
		merged = append(merged, flag)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Category < merged[j].Category
	})
	return merged
}
