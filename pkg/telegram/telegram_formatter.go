package telegram

import (
	"fmt"
	"strings"
	"time"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/report"
	"equity-reporter/internal/scoring"
	"equity-reporter/pkg/utils"
)

// DigestEntry is one ticker row in the daily news digest message.
type DigestEntry struct {
	Symbol       string
	ShortSummary string
	Polarity     string
	MeanPolarity float64
	ArticleCount int
	KeyIssues    []string
}

// FormatNewsDigest formats digest entries into one or more Markdown strings
// for Telegram, keeping each message under the API length limit.
func FormatNewsDigest(entries []DigestEntry) []string {
	if len(entries) == 0 {
		return []string{"No ticker news summaries for today."}
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		var header string
		if part == 1 {
			header = "📰 *Daily Ticker News Digest* 📰\n\n"
		} else {
			header = fmt.Sprintf("---*Daily Ticker News Digest Part %d*---\n\n", part)
		}
		currentMessage.WriteString(header)
	}

	startNewPart()

	for _, e := range entries {
		var entryBuilder strings.Builder
		entryBuilder.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", e.Symbol))
		entryBuilder.WriteString(fmt.Sprintf("💬 *Summary:* %s\n", e.ShortSummary))
		entryBuilder.WriteString(fmt.Sprintf("%s *Sentiment:* %s\n", polarityIcon(e.Polarity), e.Polarity))
		entryBuilder.WriteString(fmt.Sprintf("🧭 *Mean polarity:* %+.2f\n", e.MeanPolarity))
		entryBuilder.WriteString(fmt.Sprintf("🗞 *Articles:* %d\n", e.ArticleCount))
		if len(e.KeyIssues) > 0 {
			entryBuilder.WriteString("🔑 *Key issues:*\n")
			for _, issue := range e.KeyIssues {
				entryBuilder.WriteString(fmt.Sprintf("  - %s\n", issue))
			}
		}
		entryBuilder.WriteString("\n")

		entryString := entryBuilder.String()

		// A single entry is assumed to fit inside the limit on its own.
		if currentMessage.Len()+len(entryString) > maxLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}

		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())

	return messages
}

// SplitMessage splits a rendered document on line boundaries into chunks
// that fit under the Telegram message length limit. A single line is
// assumed to fit inside the limit on its own.
func SplitMessage(text string) []string {
	const maxLen = 4090
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if current.Len() > 0 && current.Len()+len(line) > maxLen {
			messages = append(messages, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}

// FormatNewsSummaryMessage formats one stored summary into a Markdown
// string for Telegram.
func FormatNewsSummaryMessage(summary *entity.NewsSummary) string {
	var builder strings.Builder

	builder.WriteString("--- 📰 *Ticker News Summary* ---\n\n")
	builder.WriteString(fmt.Sprintf("📈 *Ticker:* `%s`\n\n", summary.Symbol))
	builder.WriteString(fmt.Sprintf("%s *Sentiment:* %s\n", polarityIcon(summary.Polarity), summary.Polarity))
	builder.WriteString(fmt.Sprintf("🧭 *Mean polarity:* %+.2f\n", summary.MeanPolarity))
	builder.WriteString(fmt.Sprintf("⚖️ *Mentions:* %d bullish / %d bearish / %d neutral\n", summary.BullishCount, summary.BearishCount, summary.NeutralCount))
	builder.WriteString(fmt.Sprintf("🗞 *Articles:* %d\n\n", summary.ArticleCount))

	if len(summary.KeyIssues) > 0 {
		builder.WriteString("🔑 *Key Issues:*\n")
		for _, issue := range summary.KeyIssues {
			builder.WriteString(fmt.Sprintf("  - %s\n", issue))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(fmt.Sprintf("💬 *Summary:*\n_%s_\n\n", summary.ShortSummary))
	builder.WriteString("--- 🔚 *End of Summary* ---\n")

	return builder.String()
}

// FormatReportMessage condenses an assembled report into a Markdown string
// for Telegram delivery.
func FormatReportMessage(rpt *report.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 **Equity Report: %s**\n", rpt.Ticker))

	if rpt.Status == report.StatusDegraded {
		sb.WriteString(fmt.Sprintf("⚪ Recommendation: **%s**\n", rpt.Recommendation.Category))
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", rpt.StatusReason))
		sb.WriteString(fmt.Sprintf("\n📅 _Generated: %s_\n", utils.PrettyDate(rpt.GeneratedAt)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%s Recommendation: **%s**\n", categoryIcon(rpt.Recommendation.Category), rpt.Recommendation.Category))
	sb.WriteString(fmt.Sprintf("🎯 Composite Score: %.1f/100\n\n", rpt.Composite.Value))

	sb.WriteString("🔧 **Signal Breakdown:**\n")
	for _, sub := range rpt.Composite.SubScores {
		confidence := "computed"
		if !sub.Confidence {
			confidence = "defaulted"
		}
		sb.WriteString(fmt.Sprintf("• %s: %.1f (weight %.2f, %s)\n", sub.Group, sub.Value, sub.Weight, confidence))
	}

	sb.WriteString(fmt.Sprintf("\n🧠 **Rationale:**\n%s\n", rpt.Recommendation.Rationale))
	if rpt.Recommendation.Vetoed {
		sb.WriteString("⚠️ _Risk veto applied: verdict lowered one category._\n")
	}

	sb.WriteString(fmt.Sprintf("\n📅 _Generated: %s_\n", utils.PrettyDate(rpt.GeneratedAt)))

	return sb.String()
}

// AlertType represents the type of watchlist alert.
type AlertType string

const (
	PriceAbove AlertType = "PRICE_ABOVE"
	PriceBelow AlertType = "PRICE_BELOW"
)

// FormatWatchlistAlert formats a triggered watchlist threshold into a
// Markdown string for Telegram.
func FormatWatchlistAlert(alertType AlertType, symbol string, triggerPrice float64, targetPrice float64, timestamp int64) string {
	var builder strings.Builder

	var title, emoji string
	switch alertType {
	case PriceAbove:
		title = "Upper Threshold Crossed!"
		emoji = "🎯"
	case PriceBelow:
		title = "Lower Threshold Crossed!"
		emoji = "⚠️"
	default:
		title = "Price Alert"
		emoji = "🔔"
	}

	builder.WriteString(fmt.Sprintf("%s [%s] %s\n", emoji, symbol, title))
	builder.WriteString(fmt.Sprintf("💰Price touched: %.2f (threshold: %.2f)\n", triggerPrice, targetPrice))
	builder.WriteString(fmt.Sprintf("%s\n", utils.PrettyDate(time.Unix(timestamp, 0))))
	return builder.String()
}

// FormatErrorAlertMessage formats a failed stream message for the ops chat.
func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}

func polarityIcon(polarity string) string {
	switch strings.ToLower(polarity) {
	case "positive", "bullish":
		return "😊"
	case "negative", "bearish":
		return "😟"
	default:
		return "😐"
	}
}

func categoryIcon(category scoring.Category) string {
	switch category {
	case scoring.StrongBuy, scoring.Buy:
		return "🟢"
	case scoring.Sell, scoring.StrongSell:
		return "🔴"
	case scoring.NoRating:
		return "⚪"
	default:
		return "🟡"
	}
}
