package strategy

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/research/dto"
	"equity-reporter/internal/research/repository"
	"equity-reporter/internal/scoring"
	"equity-reporter/pkg/logger"
	"equity-reporter/pkg/telegram"
	"equity-reporter/pkg/utils"
)

// NewsSummaryStrategy rolls the stored mentions of each ticker up into a
// polarity summary and pushes a digest to Telegram.
type NewsSummaryStrategy struct {
	logger            *logger.Logger
	tickerRepo        repository.TickerRepository
	tickerNewsRepo    repository.TickerNewsRepository
	tickerMentionRepo repository.TickerMentionRepository
	newsSummaryRepo   repository.NewsSummaryRepository
	telegramNotifier  telegram.Notifier
}

// NewNewsSummaryStrategy creates a new instance of NewsSummaryStrategy.
func NewNewsSummaryStrategy(
	log *logger.Logger,
	tickerRepo repository.TickerRepository,
	tickerNewsRepo repository.TickerNewsRepository,
	tickerMentionRepo repository.TickerMentionRepository,
	newsSummaryRepo repository.NewsSummaryRepository,
	telegramNotifier telegram.Notifier,
) *NewsSummaryStrategy {
	return &NewsSummaryStrategy{
		logger:            log,
		tickerRepo:        tickerRepo,
		tickerNewsRepo:    tickerNewsRepo,
		tickerMentionRepo: tickerMentionRepo,
		newsSummaryRepo:   newsSummaryRepo,
		telegramNotifier:  telegramNotifier,
	}
}

// GetType returns the job type this strategy handles.
func (s *NewsSummaryStrategy) GetType() entity.JobType {
	return entity.JobTypeNewsSummary
}

// NewsSummaryPayload defines the payload for the news summary job.
type NewsSummaryPayload struct {
	Symbols            []string `json:"symbols"`
	MaxNews            int      `json:"max_news"`
	MaxNewsAgeInDays   int      `json:"max_news_age_in_days"`
	PriorityDomainList []string `json:"priority_domain_list"`
}

// Execute runs the news summary job.
func (s *NewsSummaryStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload NewsSummaryPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	symbols := payload.Symbols
	if len(symbols) == 0 {
		tickers, err := s.tickerRepo.GetTickers(ctx)
		if err != nil {
			s.logger.Error("Failed to get tickers", logger.ErrorField(err))
			return "", fmt.Errorf("failed to get tickers: %w", err)
		}
		for _, ticker := range tickers {
			symbols = append(symbols, ticker.Symbol)
		}
	}

	var (
		wg            sync.WaitGroup
		mu            sync.Mutex
		results       []dto.ResearchSummaryResult
		summaries     []*entity.NewsSummary
		digestEntries []telegram.DigestEntry
	)

	for _, symbol := range symbols {
		wg.Add(1)
		code := symbol
		utils.GoSafe(func() {
			defer wg.Done()
			s.logger.Info("Executing news summary job", logger.StringField("symbol", code))

			rankedNews, err := s.tickerNewsRepo.FindRankedNews(ctx, code, payload.MaxNews, payload.MaxNewsAgeInDays, payload.PriorityDomainList)
			if err != nil {
				s.logger.Error("Failed to fetch ranked news", logger.ErrorField(err), logger.StringField("symbol", code))
				mu.Lock()
				results = append(results, dto.ResearchSummaryResult{
					Symbol:    code,
					IsSuccess: false,
					Error:     err.Error(),
				})
				mu.Unlock()
				return
			}

			if len(rankedNews) == 0 {
				s.logger.Info("No news found for summary generation", logger.StringField("symbol", code))
				mu.Lock()
				results = append(results, dto.ResearchSummaryResult{
					Symbol:    code,
					IsSuccess: false,
					Error:     "no news found for summary generation",
				})
				mu.Unlock()
				return
			}

			cutoff := utils.TimeNowMarket().Add(-time.Duration(payload.MaxNewsAgeInDays*24) * time.Hour)
			mentions, err := s.tickerMentionRepo.FindMentionsSince(ctx, code, cutoff)
			if err != nil {
				s.logger.Error("Failed to fetch ticker mentions", logger.ErrorField(err), logger.StringField("symbol", code))
				mu.Lock()
				results = append(results, dto.ResearchSummaryResult{
					Symbol:    code,
					IsSuccess: false,
					Error:     err.Error(),
				})
				mu.Unlock()
				return
			}

			summary := buildNewsSummary(code, rankedNews, mentions)

			if err := s.newsSummaryRepo.Create(ctx, summary); err != nil {
				s.logger.Error("Failed to save news summary", logger.ErrorField(err))
				mu.Lock()
				results = append(results, dto.ResearchSummaryResult{
					Symbol:    code,
					IsSuccess: false,
					Error:     err.Error(),
				})
				mu.Unlock()
				return
			}

			s.logger.Info("Successfully generated and saved news summary", logger.StringField("symbol", code))

			mu.Lock()
			results = append(results, dto.ResearchSummaryResult{
				Symbol:    code,
				IsSuccess: true,
			})
			summaries = append(summaries, summary)
			digestEntries = append(digestEntries, telegram.DigestEntry{
				Symbol:       code,
				ShortSummary: summary.ShortSummary,
				Polarity:     summary.Polarity,
				MeanPolarity: summary.MeanPolarity,
				ArticleCount: summary.ArticleCount,
				KeyIssues:    summary.KeyIssues,
			})
			mu.Unlock()
		})
	}
	wg.Wait()

	// Stable digest order regardless of goroutine completion.
	sort.Slice(digestEntries, func(i, j int) bool {
		return digestEntries[i].Symbol < digestEntries[j].Symbol
	})

	// A single-symbol run sends the full per-ticker card instead of a
	// one-row digest.
	var messages []string
	if len(summaries) == 1 {
		messages = []string{telegram.FormatNewsSummaryMessage(summaries[0])}
	} else {
		messages = telegram.FormatNewsDigest(digestEntries)
	}

	for _, message := range messages {
		if err := s.telegramNotifier.SendMessage(message); err != nil {
			s.logger.Error("Failed to send Telegram notification", logger.ErrorField(err))
		}
		time.Sleep(100 * time.Millisecond)
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	return string(resultJSON), nil
}

// buildNewsSummary derives the summary row for one symbol from its ranked
// articles and classified mentions.
func buildNewsSummary(symbol string, rankedNews []entity.TickerNews, mentions []entity.TickerMention) *entity.NewsSummary {
	summary := &entity.NewsSummary{
		Symbol:       symbol,
		ArticleCount: len(rankedNews),
		CreatedAt:    utils.TimeNowMarket(),
	}

	meanPolarity := 0.0
	if len(mentions) > 0 {
		total := 0.0
		for _, mention := range mentions {
			value := mentionPolarityValue(mention.Polarity)
			total += value
			switch {
			case value > 0:
				summary.BullishCount++
			case value < 0:
				summary.BearishCount++
			default:
				summary.NeutralCount++
			}
		}
		meanPolarity = total / float64(len(mentions))
	}
	summary.MeanPolarity = meanPolarity
	summary.Polarity = string(polarityLabel(meanPolarity))

	issueSet := make(map[string]bool)
	for _, news := range rankedNews {
		for _, keyword := range news.Keywords {
			issueSet[keyword] = true
		}
	}
	issues := make([]string, 0, len(issueSet))
	for issue := range issueSet {
		issues = append(issues, issue)
	}
	sort.Strings(issues)
	summary.KeyIssues = issues

	for _, news := range rankedNews {
		if news.PublishedAt == nil {
			continue
		}
		if summary.SummaryStart.IsZero() || news.PublishedAt.Before(summary.SummaryStart) {
			summary.SummaryStart = *news.PublishedAt
		}
		if summary.SummaryEnd.IsZero() || news.PublishedAt.After(summary.SummaryEnd) {
			summary.SummaryEnd = *news.PublishedAt
		}
	}

	var latestTitle string
	for _, news := range rankedNews {
		if news.Title != "" {
			latestTitle = news.Title
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d articles analyzed, tone %s (mean %+.2f).", summary.ArticleCount, summary.Polarity, summary.MeanPolarity)
	if len(issues) > 0 {
		fmt.Fprintf(&b, " Key issues: %s.", strings.Join(issues, ", "))
	}
	if latestTitle != "" {
		fmt.Fprintf(&b, " Top story: %s", utils.Truncate(latestTitle, 140))
	}
	summary.ShortSummary = b.String()

	hashIdentifier := md5.Sum([]byte(fmt.Sprintf("%s|%d|%d|%d",
		symbol, summary.SummaryStart.Unix(), summary.SummaryEnd.Unix(), summary.ArticleCount)))
	summary.HashIdentifier = hex.EncodeToString(hashIdentifier[:])

	return summary
}

func mentionPolarityValue(polarity string) float64 {
	switch scoring.Polarity(polarity) {
	case scoring.PolarityBullish:
		return 1
	case scoring.PolarityBearish:
		return -1
	default:
		return 0
	}
}

func polarityLabel(mean float64) scoring.Polarity {
	switch {
	case mean > 0:
		return scoring.PolarityBullish
	case mean < 0:
		return scoring.PolarityBearish
	default:
		return scoring.PolarityNeutral
	}
}
