// Package report assembles scoring output into an ordered, immutable
// document and renders it to markdown. Assembly is a pure projection of
// already-computed inputs; no scoring happens here.
package report

import (
	"time"

	"equity-reporter/internal/scoring"
)

// Canonical section titles, in assembly order.
const (
	SectionExecutiveSummary = "Executive Summary"
	SectionCompanySnapshot  = "Company Snapshot"
	SectionKeyIndicators    = "Key Financial Indicators"
	SectionNewsSentiment    = "Recent News & Sentiment"
	SectionRisks            = "Risks & Opportunities"
	SectionFinalPerspective = "Final Perspective"
	SectionAnalystVerdict   = "Analyst Verdict"
)

// Report status values.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Section is one ordered, named block of report content.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// VerdictBlock carries the scoring outcome when verdict inclusion is
// enabled for the report.
type VerdictBlock struct {
	Score          float64          `json:"score"`
	Recommendation scoring.Category `json:"recommendation"`
	Reasoning      string           `json:"reasoning"`
}

// Report is the assembled document for one ticker at one point in time.
// It owns copies of the inputs used to produce it and is never mutated
// after assembly; a new run builds a new Report.
type Report struct {
	Ticker         string                    `json:"ticker"`
	CompanyName    string                    `json:"company_name,omitempty"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Status         string                    `json:"status"`
	StatusReason   string                    `json:"status_reason,omitempty"`
	Indicators     scoring.IndicatorRecord   `json:"indicators"`
	Signals        []scoring.SentimentSignal `json:"signals,omitempty"`
	Risks          []scoring.RiskFlag        `json:"risks,omitempty"`
	Composite      scoring.CompositeScore    `json:"composite"`
	Recommendation scoring.Recommendation    `json:"recommendation"`
	Sections       []Section                 `json:"sections"`
	Verdict        *VerdictBlock             `json:"verdict,omitempty"`
}
