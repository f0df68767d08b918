package strategy

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/research/repository"
	"equity-reporter/internal/research/sentiment"
	"equity-reporter/pkg/logger"
	"equity-reporter/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

const defaultFeedURLTemplate = "https://finance.yahoo.com/rss/headline?s=%s"

var priceTargetPattern = regexp.MustCompile(`(?i)(?:price target|target price)(?: of| to| at)? \$?(\d+(?:\.\d+)?)`)

// NewsScraperStrategy defines the strategy for scraping ticker news feeds.
type NewsScraperStrategy struct {
	logger         *logger.Logger
	tickerRepo     repository.TickerRepository
	tickerNewsRepo repository.TickerNewsRepository
	client         *http.Client
}

type scrapeResult struct {
	Status      string   `json:"status"`
	FailedLinks []string `json:"failed_links"`
	Errors      []string `json:"errors"`
	FeedURL     string   `json:"feed_url"`
}

// NewsScraperPayload defines the payload for the news scraper job.
type NewsScraperPayload struct {
	AdditionalSymbols  []string `json:"additional_symbols"`
	DelayInterval      int      `json:"delay_interval"`
	MaxNews            int      `json:"max_news"`
	MaxNewsAgeInDays   int      `json:"max_news_age_in_days"`
	BlackListedDomains []string `json:"blacklisted_domains"`
	MaxConcurrent      int      `json:"max_concurrent"`
	FeedURLTemplate    string   `json:"feed_url_template"`
}

type feedTarget struct {
	Symbol string
	URL    string
}

// NewNewsScraperStrategy creates a new instance of NewsScraperStrategy.
func NewNewsScraperStrategy(log *logger.Logger, tickerRepo repository.TickerRepository, tickerNewsRepo repository.TickerNewsRepository) *NewsScraperStrategy {
	return &NewsScraperStrategy{
		logger:         log,
		tickerRepo:     tickerRepo,
		tickerNewsRepo: tickerNewsRepo,
		client:         &http.Client{},
	}
}

// GetType returns the job type this strategy handles.
func (s *NewsScraperStrategy) GetType() entity.JobType {
	return entity.JobTypeNewsScraper
}

// Execute runs the news scraping job. Each tracked ticker gets its own feed
// fetch, bounded by the payload's concurrency limit.
func (s *NewsScraperStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload NewsScraperPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	feedURLTemplate := payload.FeedURLTemplate
	if feedURLTemplate == "" {
		feedURLTemplate = defaultFeedURLTemplate
	}

	maxConcurrent := payload.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	tickers, err := s.tickerRepo.GetTickers(ctx)
	if err != nil {
		s.logger.Error("Failed to get tickers", logger.ErrorField(err))
		return "", fmt.Errorf("failed to get tickers: %w", err)
	}

	seen := make(map[string]bool)
	var knownSymbols []string
	var feeds []feedTarget
	for _, ticker := range tickers {
		if seen[ticker.Symbol] {
			continue
		}
		seen[ticker.Symbol] = true
		knownSymbols = append(knownSymbols, ticker.Symbol)
		feeds = append(feeds, feedTarget{Symbol: ticker.Symbol, URL: fmt.Sprintf(feedURLTemplate, ticker.Symbol)})
	}
	for _, symbol := range payload.AdditionalSymbols {
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		knownSymbols = append(knownSymbols, symbol)
		feeds = append(feeds, feedTarget{Symbol: symbol, URL: fmt.Sprintf(feedURLTemplate, symbol)})
	}

	var results []scrapeResult
	var wg sync.WaitGroup
	var mu sync.Mutex

	semaphore := make(chan struct{}, maxConcurrent)

	for _, feed := range feeds {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			scrapeResultData := scrapeResult{
				FailedLinks: []string{},
				FeedURL:     feed.URL,
				Errors:      []string{},
			}
			s.logger.Info("Processing RSS feed", logger.StringField("url", feed.URL), logger.StringField("symbol", feed.Symbol))
			fp := gofeed.NewParser()
			parsed, err := fp.ParseURLWithContext(feed.URL, ctx)
			if err != nil {
				s.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("feed_url", feed.URL))
				scrapeResultData.Status = FAILED
				scrapeResultData.Errors = append(scrapeResultData.Errors, err.Error())
				mu.Lock()
				results = append(results, scrapeResultData)
				mu.Unlock()
				return
			}
			// Sort items by published date descending
			sort.Slice(parsed.Items, func(i, j int) bool {
				if parsed.Items[i].PublishedParsed == nil || parsed.Items[j].PublishedParsed == nil {
					return false
				}
				return parsed.Items[i].PublishedParsed.After(*parsed.Items[j].PublishedParsed)
			})

			filteredItems, err := s.filterExistingNewsItems(ctx, parsed.Items, payload.MaxNewsAgeInDays)
			if err != nil {
				s.logger.Error("Failed to filter existing news items", logger.ErrorField(err), logger.StringField("feed_url", feed.URL))
				scrapeResultData.Status = FAILED
				scrapeResultData.Errors = append(scrapeResultData.Errors, err.Error())
				mu.Lock()
				results = append(results, scrapeResultData)
				mu.Unlock()
				return
			}

			s.logger.Info("Filtered news items",
				logger.IntField("original_count", len(parsed.Items)),
				logger.IntField("filtered_count", len(filteredItems)),
				logger.StringField("feed_url", feed.URL),
			)

			countSuccess := 0
			for _, item := range filteredItems {

				if !utils.ShouldContinue(ctx, s.logger) {
					return
				}

				if countSuccess >= payload.MaxNews {
					break
				}

				status, news, err := s.processNewsItem(ctx, item, feed, knownSymbols, payload)
				if err != nil {
					scrapeResultData.FailedLinks = append(scrapeResultData.FailedLinks, news.Link)
					scrapeResultData.Errors = append(scrapeResultData.Errors, err.Error())
					s.logger.Error("Failed to process news item", logger.ErrorField(err), logger.StringField("title", item.Title))
					continue
				}

				if status == FAILED {
					scrapeResultData.FailedLinks = append(scrapeResultData.FailedLinks, news.Link)
					continue
				}
				if status == SUCCESS {
					countSuccess++
				}
				time.Sleep(time.Duration(payload.DelayInterval) * time.Second)
			}

			if len(scrapeResultData.FailedLinks) == 0 && countSuccess > 0 {
				scrapeResultData.Status = SUCCESS
			} else if countSuccess == 0 && len(scrapeResultData.FailedLinks) == 0 {
				scrapeResultData.Status = SKIPPED
			} else {
				scrapeResultData.Status = FAILED
			}
			mu.Lock()
			results = append(results, scrapeResultData)
			mu.Unlock()
		})

	}

	wg.Wait()

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	return string(resultJSON), nil
}

// filterExistingNewsItems drops feed items already stored and items outside
// the lookback window.
func (s *NewsScraperStrategy) filterExistingNewsItems(ctx context.Context, items []*gofeed.Item, maxNewsAgeInDays int) ([]*gofeed.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	hashMap := make(map[string]*gofeed.Item)
	var hashStrings []string

	for _, item := range items {
		hashIdentifier := md5.Sum([]byte(item.Link + "|" + item.Published))
		hashString := hex.EncodeToString(hashIdentifier[:])
		hashMap[hashString] = item
		hashStrings = append(hashStrings, hashString)
	}

	existingHashes, err := s.tickerNewsRepo.FindExistingHashes(ctx, hashStrings)
	if err != nil {
		s.logger.Error("Failed to fetch existing news", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to fetch existing news: %w", err)
	}

	now := utils.TimeNowMarket()

	var filteredItems []*gofeed.Item
	for hash, item := range hashMap {
		if existingHashes[hash] {
			s.logger.Debug("News already exists", logger.StringField("link", item.Link), logger.StringField("hash", hash))
			continue
		}

		if item.PublishedParsed == nil {
			s.logger.Info("News published date is nil", logger.StringField("link", item.Link))
			continue
		}
		if item.PublishedParsed.Before(now.Add(-time.Duration(maxNewsAgeInDays*24) * time.Hour)) {
			continue
		}

		filteredItems = append(filteredItems, item)
	}

	return filteredItems, nil
}

func (s *NewsScraperStrategy) processNewsItem(ctx context.Context, item *gofeed.Item, feed feedTarget, knownSymbols []string, payload NewsScraperPayload) (string, entity.TickerNews, error) {
	if item.PublishedParsed == nil {
		s.logger.Error("Failed to parse published date", logger.StringField("link", item.Link))
		return FAILED, entity.TickerNews{}, fmt.Errorf("failed to parse published date")
	}

	hashIdentifier := md5.Sum([]byte(item.Link + "|" + item.Published))
	hashString := hex.EncodeToString(hashIdentifier[:])

	news := entity.TickerNews{
		Title:          utils.CleanToValidUTF8(item.Title),
		Link:           item.Link,
		PublishedAt:    item.PublishedParsed,
		HashIdentifier: hashString,
		FeedLink:       feed.URL,
	}

	parsedURL, err := url.Parse(item.Link)
	if err != nil {
		s.logger.Error("Could not parse article URL to get hostname", logger.StringField("url", item.Link), logger.ErrorField(err))
		return FAILED, entity.TickerNews{}, fmt.Errorf("failed to parse article URL: %w", err)
	}
	news.Source = parsedURL.Hostname()

	if utils.ContainsString(payload.BlackListedDomains, parsedURL.Hostname()) {
		s.logger.Warn("Skip news from blacklisted domain", logger.StringField("domain", parsedURL.Hostname()), logger.StringField("feed_url", feed.URL))
		return SKIPPED, news, nil
	}

	rawContent, err := s.generateContent(ctx, item.Link)
	if err != nil {
		s.logger.Error("Failed to generate raw content", logger.ErrorField(err), logger.StringField("url", item.Link))
		return FAILED, entity.TickerNews{}, fmt.Errorf("failed to generate raw content: %w", err)
	}
	news.RawContent = rawContent

	analyzed := news.Title + " " + rawContent
	polarity := sentiment.Classify(analyzed)
	flags := sentiment.DetectFlags(analyzed)

	keywords := make([]string, 0, len(flags))
	for _, flag := range flags {
		keywords = append(keywords, flag.Detail)
	}
	news.Keywords = pq.StringArray(keywords)

	note := utils.Truncate(news.Title, 180)
	news.Mentions = append(news.Mentions, entity.TickerMention{
		Symbol:      feed.Symbol,
		Polarity:    string(polarity),
		Note:        note,
		PriceTarget: extractPriceTarget(analyzed),
	})
	for _, symbol := range symbolsInTitle(news.Title, knownSymbols, feed.Symbol) {
		news.Mentions = append(news.Mentions, entity.TickerMention{
			Symbol:   symbol,
			Polarity: string(polarity),
			Note:     note,
		})
	}

	if err := s.tickerNewsRepo.CreateIgnoreConflict(ctx, &news); err != nil {
		s.logger.Error("Failed to create ticker news", logger.ErrorField(err), logger.StringField("link", news.Link))
		return FAILED, news, fmt.Errorf("failed to create ticker news: %w", err)
	}

	return SUCCESS, news, nil
}

func (s *NewsScraperStrategy) generateContent(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		s.logger.Error("Failed to create request", logger.ErrorField(err), logger.StringField("url", url))
		return "", fmt.Errorf("failed to create request for news item: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Failed to fetch news content", logger.ErrorField(err), logger.StringField("url", url))
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Failed to fetch news content with non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("url", url))
		return "", fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error("Failed to read response body", logger.ErrorField(err), logger.StringField("url", url))
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		s.logger.Error("Failed to parse news content", logger.ErrorField(err), logger.StringField("url", url))
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	content := doc.Content()
	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(content)))
	if err != nil {
		s.logger.Error("Failed to parse news content", logger.ErrorField(err), logger.StringField("url", url))
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}

	content = strings.TrimSpace(docHTML.Text())
	content = strings.ReplaceAll(content, "\n", "")
	content = strings.ReplaceAll(content, "\t", "")
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.ReplaceAll(content, "\f", "")
	return utils.SafeText(content), nil
}

// symbolsInTitle returns known symbols that appear as standalone tokens in
// the title, excluding the feed's own symbol. Sorted for stable output.
func symbolsInTitle(title string, knownSymbols []string, exclude string) []string {
	tokens := strings.FieldsFunc(strings.ToUpper(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
	})
	present := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		present[token] = true
	}

	var matched []string
	for _, symbol := range knownSymbols {
		if symbol == exclude {
			continue
		}
		if present[strings.ToUpper(symbol)] {
			matched = append(matched, symbol)
		}
	}
	sort.Strings(matched)
	return matched
}

// extractPriceTarget pulls the first analyst price target stated in the text,
// if any.
func extractPriceTarget(text string) *float64 {
	match := priceTargetPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return nil
	}
	target, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	return &target
}
