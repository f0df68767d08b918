package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/research/dto"
	"equity-reporter/internal/research/repository"
	"equity-reporter/pkg/logger"
	redisPkg "equity-reporter/pkg/redis"
	"equity-reporter/pkg/telegram"
	"equity-reporter/pkg/utils"

	redis "github.com/redis/go-redis/v9"
)

const (
	REDIS_KEY_WATCHLIST_ALERT = "watchlist_price_alert:%s:%s"
	REDIS_KEY_LAST_PRICE      = "last_price:%s"
)

// WatchlistAlertStrategy checks active watchlist entries against fresh market
// data and alerts when a threshold is crossed.
type WatchlistAlertStrategy struct {
	logger           *logger.Logger
	marketDataRepo   repository.MarketDataRepository
	telegramNotifier telegram.Notifier
	watchlistRepo    repository.WatchlistRepository
	redisClient      *redisPkg.Client
}

// WatchlistAlertPayload defines the payload for watchlist price alerts.
type WatchlistAlertPayload struct {
	DataInterval                string  `json:"data_interval"`
	DataRange                   string  `json:"data_range"`
	AlertTriggerWindowDuration  string  `json:"alert_trigger_window_duration"`
	AlertCacheDuration          string  `json:"alert_cache_duration"`
	AlertResendThresholdPercent float64 `json:"alert_resend_threshold_percent"`
}

// WatchlistAlertResult defines the result for one watchlist entry.
type WatchlistAlertResult struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
	Errors string `json:"errors"`
}

// NewWatchlistAlertStrategy creates a new instance of WatchlistAlertStrategy.
func NewWatchlistAlertStrategy(logger *logger.Logger, marketDataRepo repository.MarketDataRepository, telegramNotifier telegram.Notifier, watchlistRepo repository.WatchlistRepository, redisClient *redisPkg.Client) *WatchlistAlertStrategy {
	return &WatchlistAlertStrategy{
		logger:           logger,
		marketDataRepo:   marketDataRepo,
		telegramNotifier: telegramNotifier,
		watchlistRepo:    watchlistRepo,
		redisClient:      redisClient,
	}
}

// GetType returns the job type this strategy handles.
func (s *WatchlistAlertStrategy) GetType() entity.JobType {
	return entity.JobTypeWatchlistAlert
}

// Execute runs the watchlist alert job.
func (s *WatchlistAlertStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	s.logger.DebugContext(ctx, "Executing watchlist alert job", logger.IntField("job_id", int(job.ID)))

	var (
		payload WatchlistAlertPayload
		results []WatchlistAlertResult
	)
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.logger.Error("Failed to unmarshal job payload", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return FAILED, fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	alertTriggerWindowDuration, err := time.ParseDuration(payload.AlertTriggerWindowDuration)
	if err != nil {
		s.logger.Error("Failed to parse alert_trigger_window_duration", logger.ErrorField(err), logger.StringField("alert_trigger_window_duration", payload.AlertTriggerWindowDuration), logger.IntField("job_id", int(job.ID)))
		return FAILED, fmt.Errorf("failed to parse alert_trigger_window_duration: %w", err)
	}

	alertCacheDuration, err := time.ParseDuration(payload.AlertCacheDuration)
	if err != nil {
		s.logger.Error("Failed to parse alert_cache_duration", logger.ErrorField(err), logger.StringField("alert_cache_duration", payload.AlertCacheDuration), logger.IntField("job_id", int(job.ID)))
		return FAILED, fmt.Errorf("failed to parse alert_cache_duration: %w", err)
	}

	alertTriggerWindowTime := utils.TimeNowMarket().Add(-alertTriggerWindowDuration)

	entries, err := s.watchlistRepo.Get(ctx, dto.GetWatchlistParam{
		IsActive: utils.ToPointer(true),
	})
	if err != nil {
		return FAILED, err
	}

	for _, entry := range entries {

		resultData := WatchlistAlertResult{
			Symbol: entry.Symbol,
		}

		s.logger.DebugContext(ctx, "Processing watchlist entry", logger.StringField("symbol", entry.Symbol))
		snapshot, err := s.marketDataRepo.GetSnapshot(ctx, dto.GetMarketDataParam{
			Symbol:   entry.Symbol,
			Range:    payload.DataRange,
			Interval: payload.DataInterval,
		})
		if err != nil {
			s.logger.Error("Failed to get market data", logger.ErrorField(err), logger.StringField("symbol", entry.Symbol))
			resultData.Status = FAILED
			resultData.Errors = err.Error()
			results = append(results, resultData)
			continue
		}

		// keep the freshest price in Redis for other consumers
		key := fmt.Sprintf(REDIS_KEY_LAST_PRICE, entry.Symbol)
		redisPipe := s.redisClient.Pipeline()
		redisPipe.HSet(ctx, key, map[string]interface{}{
			"price":     snapshot.MarketPrice,
			"timestamp": utils.TimeNowMarket().Unix(),
		})
		redisPipe.Expire(ctx, key, alertCacheDuration+2*time.Minute)
		_, errRedis := redisPipe.Exec(ctx)
		if errRedis != nil {
			s.logger.Error("Failed to execute Redis pipeline",
				logger.ErrorField(errRedis), logger.StringField("symbol", entry.Symbol))
		}

		crossedAboveAt := 0.0
		crossedBelowAt := 0.0
		timestampAbove := int64(0)
		timestampBelow := int64(0)

		// check whether recent candles already crossed a threshold
		for _, candle := range snapshot.OHLCV {
			if candle.Timestamp < alertTriggerWindowTime.Unix() {
				continue
			}
			if entry.AlertAbovePrice > 0 && candle.High >= entry.AlertAbovePrice {
				crossedAboveAt = candle.High
				timestampAbove = candle.Timestamp
			}
			if entry.AlertBelowPrice > 0 && candle.Low <= entry.AlertBelowPrice {
				crossedBelowAt = candle.Low
				timestampBelow = candle.Timestamp
			}
		}

		// check the live price too
		if snapshot.MarketPrice != 0 && entry.AlertAbovePrice > 0 && snapshot.MarketPrice >= entry.AlertAbovePrice {
			crossedAboveAt = snapshot.MarketPrice
			timestampAbove = utils.TimeNowMarket().Unix()
		}
		if snapshot.MarketPrice != 0 && entry.AlertBelowPrice > 0 && snapshot.MarketPrice <= entry.AlertBelowPrice {
			crossedBelowAt = snapshot.MarketPrice
			timestampBelow = utils.TimeNowMarket().Unix()
		}

		if crossedAboveAt > 0 {
			err = s.sendTelegramMessageAlert(
				ctx,
				&entry,
				telegram.PriceAbove,
				crossedAboveAt,
				entry.AlertAbovePrice,
				timestampAbove,
				alertCacheDuration,
				payload.AlertResendThresholdPercent,
			)
		}
		if crossedBelowAt > 0 {
			err = s.sendTelegramMessageAlert(
				ctx,
				&entry,
				telegram.PriceBelow,
				crossedBelowAt,
				entry.AlertBelowPrice,
				timestampBelow,
				alertCacheDuration,
				payload.AlertResendThresholdPercent,
			)
		}

		if crossedAboveAt > 0 || crossedBelowAt > 0 {
			entry.IsAlertTriggered = true
			entry.LastAlertedAt = utils.TimeNowMarket()
			errSql := s.watchlistRepo.Update(ctx, &entry)
			if errSql != nil {
				s.logger.Error("Failed to update watchlist entry", logger.ErrorField(errSql), logger.StringField("symbol", entry.Symbol))
				resultData.Status = FAILED
				resultData.Errors = errSql.Error()
				results = append(results, resultData)
				continue
			}
		}

		if err != nil {
			s.logger.Error("Failed to send watchlist alert", logger.ErrorField(err), logger.StringField("symbol", entry.Symbol))
			resultData.Status = FAILED
			resultData.Errors = err.Error()
			results = append(results, resultData)
		} else if crossedAboveAt > 0 || crossedBelowAt > 0 {
			resultData.Status = SUCCESS
			results = append(results, resultData)
		} else {
			resultData.Status = SKIPPED
			results = append(results, resultData)
		}
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	return string(resultJSON), nil
}

func (s *WatchlistAlertStrategy) sendTelegramMessageAlert(ctx context.Context,
	entry *entity.WatchlistEntry,
	alertType telegram.AlertType,
	triggerPrice float64,
	targetPrice float64,
	timestamp int64,
	cacheDuration time.Duration,
	alertResendThresholdPercent float64) error {
	ok, err := s.shouldTriggerAlert(ctx, entry, triggerPrice, alertType, alertResendThresholdPercent)
	if err != nil {
		s.logger.Error("Failed to check alert", logger.ErrorField(err), logger.StringField("symbol", entry.Symbol))
		return err
	}
	if !ok {
		return nil
	}

	message := telegram.FormatWatchlistAlert(alertType, entry.Symbol, triggerPrice, targetPrice, timestamp)
	if err := s.telegramNotifier.SendMessage(message); err != nil {
		s.logger.Error("Failed to send alert", logger.ErrorField(err), logger.StringField("symbol", entry.Symbol))
	}

	s.logger.Debug("Send alert", logger.StringField("symbol", entry.Symbol), logger.StringField("alert_type", string(alertType)))

	return s.redisClient.Set(ctx, fmt.Sprintf(REDIS_KEY_WATCHLIST_ALERT, alertType, entry.Symbol), triggerPrice, cacheDuration).Err()
}

func (s *WatchlistAlertStrategy) getLastAlertPrice(ctx context.Context, entry *entity.WatchlistEntry, alertType telegram.AlertType) (float64, error) {
	lastAlertPrice, err := s.redisClient.Get(ctx, fmt.Sprintf(REDIS_KEY_WATCHLIST_ALERT, alertType, entry.Symbol)).Result()
	if err != nil && errors.Is(err, redis.Nil) {
		return 0, nil // no alert sent yet
	}

	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}

	return strconv.ParseFloat(lastAlertPrice, 64)
}

// shouldTriggerAlert suppresses repeats until the price moved far enough from
// the last alerted price.
func (s *WatchlistAlertStrategy) shouldTriggerAlert(ctx context.Context,
	entry *entity.WatchlistEntry,
	triggerPrice float64,
	alertType telegram.AlertType,
	alertResendThresholdPercent float64) (bool, error) {

	lastAlertPrice, err := s.getLastAlertPrice(ctx, entry, alertType)
	if err != nil {
		return false, err
	}

	if lastAlertPrice == 0 {
		return true, nil
	}

	diff := math.Abs(triggerPrice - lastAlertPrice)
	percentChange := (diff / lastAlertPrice) * 100

	if percentChange >= alertResendThresholdPercent {
		s.logger.Debug("Trigger resend alert", logger.StringField("symbol", entry.Symbol), logger.IntField("trigger_price", int(triggerPrice)), logger.IntField("last_alert_price", int(lastAlertPrice)), logger.IntField("percent_change", int(percentChange)))
		return true, nil
	}

	s.logger.Debug("Skip resend alert", logger.StringField("symbol", entry.Symbol), logger.IntField("trigger_price", int(triggerPrice)), logger.IntField("last_alert_price", int(lastAlertPrice)), logger.IntField("percent_change", int(percentChange)))

	return false, nil
}
