package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"equity-reporter/internal/research/config"
	"equity-reporter/internal/research/dto"
	"equity-reporter/pkg/logger"

	talib "github.com/markcheno/go-talib"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultMarketDataCacheTTL = 5 * time.Minute
	tradingDaysPerYear        = 252

	smaShortPeriod = 50
	smaLongPeriod  = 200
	rsiPeriod      = 14
)

// MarketDataRepository fetches quote and candle data for a symbol and derives
// the technical indicators the scorers consume.
type MarketDataRepository interface {
	GetSnapshot(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketSnapshot, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	cache          *cache.Cache
}

// NewMarketDataRepository creates a new instance of MarketDataRepository.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.MarketData.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	cacheTTL := cfg.MarketData.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultMarketDataCacheTTL
	}

	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: requestLimiter,
		cache:          cache.New(cacheTTL, 2*cacheTTL),
	}
}

// GetSnapshot returns the market snapshot for a symbol, served from cache when
// a recent fetch exists. A quote failure is fatal; a chart failure degrades the
// snapshot to quote-only fields.
func (r *marketDataRepository) GetSnapshot(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketSnapshot, error) {
	cacheKey := fmt.Sprintf("market_data:%s:%s:%s", param.Symbol, param.Range, param.Interval)
	if cached, found := r.cache.Get(cacheKey); found {
		if snapshot, ok := cached.(*dto.MarketSnapshot); ok {
			r.log.DebugContext(ctx, "Market data cache hit", logger.StringField("symbol", param.Symbol))
			return snapshot, nil
		}
	}

	quote, err := r.fetchQuote(ctx, param.Symbol)
	if err != nil {
		return nil, err
	}

	snapshot := &dto.MarketSnapshot{
		Symbol:      quote.Symbol,
		MarketPrice: quote.RegularMarketPrice,
		MarketCap:   quote.MarketCap,
		TrailingPE:  quote.TrailingPE,
		ForwardPE:   quote.ForwardPE,
		Low52W:      quote.FiftyTwoWeekLow,
		High52W:     quote.FiftyTwoWeekHigh,
		Volume:      quote.RegularMarketVolume,
		Beta:        quote.Beta,
		AsOf:        time.Unix(quote.RegularMarketTime, 0).UTC(),
	}

	candles, err := r.fetchChart(ctx, param)
	if err != nil {
		r.log.Warn("Failed to fetch chart data, snapshot degraded to quote-only fields",
			logger.StringField("symbol", param.Symbol),
			logger.ErrorField(err),
		)
	} else {
		snapshot.OHLCV = candles
		attachDerivedIndicators(snapshot, candles)
	}

	r.cache.Set(cacheKey, snapshot, cache.DefaultExpiration)

	return snapshot, nil
}

func (r *marketDataRepository) fetchQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	reqURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", r.cfg.MarketData.BaseURL, url.QueryEscape(symbol))
	body, err := r.sendRequest(ctx, http.MethodGet, reqURL)
	if err != nil {
		return nil, err
	}

	var response dto.QuoteResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if response.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error for %s: %s", symbol, response.QuoteResponse.Error.Description)
	}

	if len(response.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data returned for %s", symbol)
	}

	return &response.QuoteResponse.Result[0], nil
}

func (r *marketDataRepository) fetchChart(ctx context.Context, param dto.GetMarketDataParam) ([]dto.OHLCV, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		r.cfg.MarketData.BaseURL, url.PathEscape(param.Symbol), url.QueryEscape(param.Range), url.QueryEscape(param.Interval))
	body, err := r.sendRequest(ctx, http.MethodGet, reqURL)
	if err != nil {
		return nil, err
	}

	var response dto.ChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	if response.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", param.Symbol, response.Chart.Error.Description)
	}

	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", param.Symbol)
	}

	result := response.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var candles []dto.OHLCV
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		candle := dto.OHLCV{
			Timestamp: ts,
			Close:     quote.Close[i],
		}
		if i < len(quote.Open) {
			candle.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			candle.High = quote.High[i]
		}
		if i < len(quote.Low) {
			candle.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			candle.Volume = quote.Volume[i]
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

// attachDerivedIndicators computes moving averages, RSI and annualized return
// statistics from the candle closes. Each indicator is only set when the
// series is long enough for its period.
func attachDerivedIndicators(snapshot *dto.MarketSnapshot, candles []dto.OHLCV) {
	closes := make([]float64, 0, len(candles))
	for _, c := range candles {
		closes = append(closes, c.Close)
	}

	if len(closes) >= smaShortPeriod {
		sma := talib.Sma(closes, smaShortPeriod)
		snapshot.SMA50 = floatPtr(sma[len(sma)-1])
	}
	if len(closes) >= smaLongPeriod {
		sma := talib.Sma(closes, smaLongPeriod)
		snapshot.SMA200 = floatPtr(sma[len(sma)-1])
	}
	if len(closes) > rsiPeriod {
		rsi := talib.Rsi(closes, rsiPeriod)
		snapshot.RSI14 = floatPtr(rsi[len(rsi)-1])
	}

	if len(closes) < 3 {
		return
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, closes[i]/closes[i-1]-1)
	}

	snapshot.AnnualReturn = floatPtr(stat.Mean(returns, nil) * tradingDaysPerYear)
	snapshot.AnnualVol = floatPtr(stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear))

	peak := closes[0]
	maxDrawdown := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if dd := (peak - c) / peak; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}
	snapshot.MaxDrawdown = floatPtr(maxDrawdown)
}

func floatPtr(v float64) *float64 {
	return &v
}

func (r *marketDataRepository) sendRequest(ctx context.Context, method string, reqURL string) ([]byte, error) {
	limitStart := time.Now()
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", zap.String("url", reqURL), zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.String("url", reqURL),
		zap.Int("max_request_per_minute", r.cfg.MarketData.MaxRequestPerMinute),
		zap.Duration("throttle_delay", time.Since(limitStart)),
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to market data API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from market data API", fields...)
		return nil, fmt.Errorf("market data API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from market data API", fields...)
		return nil, err
	}

	return body, nil
}
