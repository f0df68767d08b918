package report

import (
	"fmt"
	"sort"
	"time"

	"equity-reporter/internal/scoring"
	"equity-reporter/pkg/utils"
)

// Options controls assembly behavior that varies per report type.
type Options struct {
	IncludeVerdict bool `mapstructure:"include_verdict" json:"include_verdict"`
}

// Input is everything assembly projects into sections. StatusReason is set
// only for degraded runs where aggregation produced no meaningful composite.
// NewsDigest is the short prose summary of the news window when one was
// stored; it leads the news section.
type Input struct {
	CompanyName    string
	Record         scoring.IndicatorRecord
	Signals        []scoring.SentimentSignal
	Risks          []scoring.RiskFlag
	NewsDigest     string
	Composite      scoring.CompositeScore
	Recommendation scoring.Recommendation
	GeneratedAt    time.Time
	StatusReason   string
}

// Assembler builds the six canonical sections in a fixed order. It holds
// only read-only options, so one instance serves concurrent runs.
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble validates prerequisites and projects the input into an ordered
// Report. A missing prerequisite is an IncompleteReportError and means a
// pipeline stage ran out of sequence.
func (a *Assembler) Assemble(in Input) (*Report, error) {
	if in.Record.Ticker == "" {
		return nil, &IncompleteReportError{Field: "indicators.ticker"}
	}
	if in.GeneratedAt.IsZero() {
		return nil, &IncompleteReportError{Field: "generated_at"}
	}
	if in.Recommendation.Category == "" {
		return nil, &IncompleteReportError{Field: "recommendation"}
	}
	degraded := in.Recommendation.Category == scoring.NoRating
	if !degraded && len(in.Composite.SubScores) == 0 {
		return nil, &IncompleteReportError{Field: "composite"}
	}

	signals := make([]scoring.SentimentSignal, len(in.Signals))
	copy(signals, in.Signals)
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Source != signals[j].Source {
			return signals[i].Source < signals[j].Source
		}
		if signals[i].Polarity != signals[j].Polarity {
			return signals[i].Polarity < signals[j].Polarity
		}
		return signals[i].Note < signals[j].Note
	})

	risks := make([]scoring.RiskFlag, len(in.Risks))
	copy(risks, in.Risks)
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Category != risks[j].Category {
			return risks[i].Category < risks[j].Category
		}
		return risks[i].Detail < risks[j].Detail
	})

	subs := make([]scoring.SubScore, len(in.Composite.SubScores))
	copy(subs, in.Composite.SubScores)
	composite := in.Composite
	composite.SubScores = subs

	status := StatusOK
	if degraded {
		status = StatusDegraded
	}

	rpt := &Report{
		Ticker:         in.Record.Ticker,
		CompanyName:    in.CompanyName,
		GeneratedAt:    in.GeneratedAt,
		Status:         status,
		StatusReason:   in.StatusReason,
		Indicators:     in.Record,
		Signals:        signals,
		Risks:          risks,
		Composite:      composite,
		Recommendation: in.Recommendation,
		Sections: []Section{
			executiveSummary(in, degraded),
			companySnapshot(in),
			keyIndicators(in.Record),
			newsSentiment(in.NewsDigest, signals),
			risksOpportunities(risks, signals),
			finalPerspective(in, degraded),
		},
	}

	if a.opts.IncludeVerdict && !degraded {
		rpt.Verdict = &VerdictBlock{
			Score:          in.Composite.Value,
			Recommendation: in.Recommendation.Category,
			Reasoning:      in.Recommendation.Rationale,
		}
	}

	return rpt, nil
}

func executiveSummary(in Input, degraded bool) Section {
	name := in.CompanyName
	if name == "" {
		name = in.Record.Ticker
	}

	lines := []string{
		fmt.Sprintf("%s trades at %s with a market capitalization of %s.",
			name, formatPrice(in.Record.CurrentPrice), formatMarketCap(in.Record.MarketCap)),
	}
	if degraded {
		lines = append(lines, fmt.Sprintf("No composite score could be produced this run: %s.", in.StatusReason))
	} else {
		lines = append(lines, fmt.Sprintf("The composite signal score is %.1f, mapping to a %s stance.",
			in.Composite.Value, in.Recommendation.Category))
	}
	return Section{Title: SectionExecutiveSummary, Lines: lines}
}

func companySnapshot(in Input) Section {
	lines := []string{fmt.Sprintf("Ticker: %s", in.Record.Ticker)}
	if in.CompanyName != "" {
		lines = append(lines, fmt.Sprintf("Company: %s", in.CompanyName))
	}
	if in.Record.Sector != "" {
		lines = append(lines, fmt.Sprintf("Sector: %s", in.Record.Sector))
	}
	lines = append(lines, fmt.Sprintf("Market cap: %s", formatMarketCap(in.Record.MarketCap)))
	if !in.Record.AsOf.IsZero() {
		lines = append(lines, fmt.Sprintf("Data as of: %s", utils.PrettyDate(in.Record.AsOf)))
	}
	return Section{Title: SectionCompanySnapshot, Lines: lines}
}

func keyIndicators(rec scoring.IndicatorRecord) Section {
	lines := []string{
		fmt.Sprintf("Current price: %s", formatPrice(rec.CurrentPrice)),
		fmt.Sprintf("Trailing P/E: %s", formatMetric(rec.TrailingPE, "%.2f")),
		fmt.Sprintf("Forward P/E: %s", formatMetric(rec.ForwardPE, "%.2f")),
	}
	if rec.Low52W.Valid && rec.High52W.Valid {
		lines = append(lines, fmt.Sprintf("52-week range: %s - %s",
			formatPrice(rec.Low52W.Value), formatPrice(rec.High52W.Value)))
	} else {
		lines = append(lines, "52-week range: n/a")
	}
	lines = append(lines,
		fmt.Sprintf("50-day SMA: %s", formatMetric(rec.SMA50, "$%.2f")),
		fmt.Sprintf("200-day SMA: %s", formatMetric(rec.SMA200, "$%.2f")),
		fmt.Sprintf("RSI (14-day): %s", formatMetric(rec.RSI14, "%.1f")),
		fmt.Sprintf("Volume: %s", formatMetric(rec.Volume, "%.0f")),
		fmt.Sprintf("Beta: %s", formatMetric(rec.Beta, "%.2f")),
	)
	return Section{Title: SectionKeyIndicators, Lines: lines}
}

func newsSentiment(digest string, signals []scoring.SentimentSignal) Section {
	var lines []string
	if digest != "" {
		lines = append(lines, fmt.Sprintf("Digest: %s", digest))
	}
	if len(signals) == 0 {
		lines = append(lines, "No classified sentiment signals were available for this run.")
		return Section{Title: SectionNewsSentiment, Lines: lines}
	}

	for _, sig := range signals {
		line := fmt.Sprintf("- %s: %s", sig.Source, sig.Polarity)
		if sig.Note != "" {
			line += fmt.Sprintf(", %s", sig.Note)
		}
		if sig.PriceTarget != nil {
			line += fmt.Sprintf(" (target %s)", formatPrice(*sig.PriceTarget))
		}
		lines = append(lines, line)
	}
	return Section{Title: SectionNewsSentiment, Lines: lines}
}

func risksOpportunities(risks []scoring.RiskFlag, signals []scoring.SentimentSignal) Section {
	lines := []string{"Risks:"}
	if len(risks) == 0 {
		lines = append(lines, "- No material risk flags were raised for this run.")
	}
	for _, flag := range risks {
		line := fmt.Sprintf("- %s (%s severity)", flag.Category, flag.Severity)
		if flag.Detail != "" {
			line += fmt.Sprintf(": %s", flag.Detail)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "Opportunities:")
	bullish := 0
	for _, sig := range signals {
		if sig.Polarity != scoring.PolarityBullish || sig.Note == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", sig.Note, sig.Source))
		bullish++
	}
	if bullish == 0 {
		lines = append(lines, "- No bullish catalysts were identified in the signal set.")
	}
	return Section{Title: SectionRisks, Lines: lines}
}

func finalPerspective(in Input, degraded bool) Section {
	if degraded {
		return Section{
			Title: SectionFinalPerspective,
			Lines: []string{fmt.Sprintf("No rating was assigned: %s.", in.StatusReason)},
		}
	}

	lines := []string{
		fmt.Sprintf("The weighted composite of %.1f maps to %s.", in.Composite.Value, in.Recommendation.Category),
		fmt.Sprintf("Signal contribution: %s.", in.Recommendation.Rationale),
	}
	if in.Recommendation.Vetoed {
		lines = append(lines, "A critical risk reading forced the verdict one category lower than the score alone implies.")
	}
	return Section{Title: SectionFinalPerspective, Lines: lines}
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatMarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

func formatMetric(m scoring.Metric, layout string) string {
	if !m.Valid {
		return "n/a"
	}
	return fmt.Sprintf(layout, m.Value)
}
