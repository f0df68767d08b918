package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/research/dto"
	"equity-reporter/internal/research/repository"
	"equity-reporter/pkg/common"
	"equity-reporter/pkg/logger"
	"equity-reporter/pkg/redis"

	goRedis "github.com/redis/go-redis/v9"
)

// ReportRunStrategy fans a report generation job out to the report stream,
// one message per symbol.
type ReportRunStrategy struct {
	logger      *logger.Logger
	redisClient *redis.Client
	tickerRepo  repository.TickerRepository
}

// ReportRunResult is the per-symbol enqueue outcome.
type ReportRunResult struct {
	Symbol  string `json:"symbol"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewReportRunStrategy creates a new ReportRunStrategy.
func NewReportRunStrategy(log *logger.Logger, redisClient *redis.Client, tickerRepo repository.TickerRepository) JobExecutionStrategy {
	return &ReportRunStrategy{logger: log, redisClient: redisClient, tickerRepo: tickerRepo}
}

// GetType returns the job type this strategy handles.
func (s *ReportRunStrategy) GetType() entity.JobType {
	return entity.JobTypeReportRun
}

// Execute enqueues one report generation task per symbol. Symbols listed in
// the payload win; an empty list means every tracked ticker. Symbols in the
// skip list are never enqueued.
func (s *ReportRunStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload dto.ReportRunPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.logger.Error("Failed to unmarshal job payload", logger.ErrorField(err), logger.Field("job_id", job.ID))
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

	skipSymbols := make(map[string]bool, len(payload.SkipSymbols))
	for _, symbol := range payload.SkipSymbols {
		skipSymbols[symbol] = true
	}

	isSuccess := false

	var results []ReportRunResult
	for _, symbol := range symbols {
		if skipSymbols[symbol] {
			s.logger.Info("Skipping symbol", logger.StringField("symbol", symbol))
			continue
		}
		streamData := &dto.StreamDataReportRun{
			Symbol:           symbol,
			Range:            payload.Range,
			Interval:         payload.Interval,
			MaxNewsAgeInDays: payload.MaxNewsAgeInDays,
			NotifyUser:       payload.NotifyUser,
		}

		streamDataJSON, err := json.Marshal(streamData)
		if err != nil {
			s.logger.Error("Failed to marshal report run payload", logger.ErrorField(err))
			results = append(results, ReportRunResult{
				Symbol:  symbol,
				Success: false,
				Error:   err.Error(),
			})
			continue
		}

		if err := s.redisClient.XAdd(ctx, &goRedis.XAddArgs{
			Stream: common.RedisStreamReportGenerate,
			Values: map[string]interface{}{"payload": streamDataJSON},
		}).Err(); err != nil {
			s.logger.Error("Failed to enqueue report generation task", logger.ErrorField(err), logger.StringField("symbol", symbol))
			results = append(results, ReportRunResult{
				Symbol:  symbol,
				Success: false,
				Error:   err.Error(),
			})
			continue
		}
		isSuccess = true
		results = append(results, ReportRunResult{
			Symbol:  symbol,
			Success: true,
		})
	}

	resultJSON, err := json.Marshal(results)
	if err != nil {
		s.logger.Error("Failed to marshal results", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	if isSuccess {
		return string(resultJSON), nil
	}

	return "", fmt.Errorf("failed to enqueue report generation task")
}
