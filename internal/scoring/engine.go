package scoring

import (
	"context"
	"sync"

	"equity-reporter/pkg/utils"
)

// Engine fans the configured scorers out per run and folds their sub-scores
// into a composite and a recommendation. The engine holds no per-run state;
// the only shared piece is the read-only Config, so concurrent runs for
// different tickers never interfere.
type Engine struct {
	cfg     Config
	scorers []Scorer
}

// NewEngine validates the configuration once and registers the four signal
// group scorers.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg: cfg,
		scorers: []Scorer{
			NewValuationScorer(cfg),
			NewMomentumScorer(cfg),
			NewSentimentScorer(cfg),
			NewRiskScorer(cfg),
		},
	}, nil
}

// Config returns the read-only configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Outcome couples a composite score with its mapped recommendation.
type Outcome struct {
	Composite      CompositeScore
	Recommendation Recommendation
}

// Evaluate runs all scorers concurrently, waits for every sub-score at the
// aggregation barrier, and maps the composite to a recommendation. Scoring
// is bounded and side-effect-free, so cancellation is only honored at entry;
// callers wrap the whole run in a timeout when they need one.
func (e *Engine) Evaluate(ctx context.Context, in Input) (*Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		subs = make([]SubScore, 0, len(e.scorers))
	)
	for _, scorer := range e.scorers {
		wg.Add(1)
		sc := scorer
		utils.GoSafe(func() {
			defer wg.Done()
			sub := sc.Score(in)
			mu.Lock()
			subs = append(subs, sub)
			mu.Unlock()
		})
	}
	wg.Wait()

	composite, err := Aggregate(in.Record.Ticker, subs)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Composite:      composite,
		Recommendation: Recommend(e.cfg, composite),
	}, nil
}
