package dto

// ReportRunPayload is the job payload for a report generation run.
type ReportRunPayload struct {
	Symbols          []string `json:"symbols"`
	SkipSymbols      []string `json:"skip_symbols"`
	Range            string   `json:"range"`
	Interval         string   `json:"interval"`
	NotifyUser       bool     `json:"notify_user"`
	MaxNewsAgeInDays int      `json:"max_news_age_in_days"`
}

// StreamDataReportRun is the per-ticker message fanned out on the report
// generation stream.
type StreamDataReportRun struct {
	Symbol           string `json:"symbol"`
	Range            string `json:"range"`
	Interval         string `json:"interval"`
	MaxNewsAgeInDays int    `json:"max_news_age_in_days"`
	NotifyUser       bool   `json:"notify_user"`
}

// ResearchSummaryResult is the per-ticker outcome a strategy reports back
// in its job output.
type ResearchSummaryResult struct {
	Symbol    string `json:"symbol"`
	IsSuccess bool   `json:"is_success"`
	Error     string `json:"error"`
}
