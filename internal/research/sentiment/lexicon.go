// Package sentiment classifies article text into a polarity and extracts
// categorized risk flags using fixed keyword lexicons. The same text always
// classifies the same way, so repeated runs over one article set agree.
package sentiment

import (
	"strings"

	"equity-reporter/internal/scoring"
)

var bullishTerms = []string{
	"beats",
	"beat expectations",
	"record revenue",
	"record profit",
	"surge",
	"soar",
	"rally",
	"upgrade",
	"raised guidance",
	"raises guidance",
	"strong demand",
	"outperform",
	"buyback",
	"dividend increase",
	"all-time high",
	"expands",
	"growth accelerat",
}

var bearishTerms = []string{
	"misses",
	"missed expectations",
	"cuts guidance",
	"cut guidance",
	"downgrade",
	"plunge",
	"slump",
	"tumble",
	"layoff",
	"lawsuit",
	"probe",
	"investigation",
	"recall",
	"warns",
	"shortfall",
	"weak demand",
	"sell-off",
	"decline",
}

// Classify counts lexicon hits in the text and returns the dominant
// polarity. A tie or zero hits is neutral.
func Classify(text string) scoring.Polarity {
	lowered := strings.ToLower(text)
	bulls := countHits(lowered, bullishTerms)
	bears := countHits(lowered, bearishTerms)

	switch {
	case bulls > bears:
		return scoring.PolarityBullish
	case bears > bulls:
		return scoring.PolarityBearish
	default:
		return scoring.PolarityNeutral
	}
}

func countHits(lowered string, terms []string) int {
	hits := 0
	for _, term := range terms {
		hits += strings.Count(lowered, term)
	}
	return hits
}
