package scoring

// neutralScore is the defaulted sub-score value emitted when a scorer has
// no data to work with.
const neutralScore = 50.0

// Input carries everything one scoring run reads. Risks distinguishes nil
// (no risk assessment supplied) from an empty slice (assessed, nothing
// flagged).
type Input struct {
	Record  IndicatorRecord
	Signals []SentimentSignal
	Risks   []RiskFlag
}

// Scorer maps one signal group of the input to a bounded SubScore.
// Implementations are pure and deterministic; identical input always
// produces an identical sub-score.
type Scorer interface {
	Group() Group
	Score(in Input) SubScore
}

func neutral(group Group, weight float64) SubScore {
	return SubScore{Group: group, Value: neutralScore, Weight: weight, Confidence: false}
}
