package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/report"
	"equity-reporter/internal/research/config"
	"equity-reporter/internal/research/dto"
	"equity-reporter/internal/research/repository"
	"equity-reporter/internal/research/sentiment"
	"equity-reporter/internal/scoring"
	"equity-reporter/pkg/common"
	"equity-reporter/pkg/logger"
	redisPkg "equity-reporter/pkg/redis"
	"equity-reporter/pkg/telegram"
	"equity-reporter/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const defaultNewsLookback = 7 * 24 * time.Hour

// ReportGeneratorService consumes report tasks from the stream, scores the
// symbol and assembles the research report.
type ReportGeneratorService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
	Generate(ctx context.Context, streamData dto.StreamDataReportRun) error
}

type reportGeneratorService struct {
	cfg               *config.Config
	log               *logger.Logger
	redisClient       *redisPkg.Client
	engine            *scoring.Engine
	assembler         *report.Assembler
	marketDataRepo    repository.MarketDataRepository
	tickerRepo        repository.TickerRepository
	tickerNewsRepo    repository.TickerNewsRepository
	tickerMentionRepo repository.TickerMentionRepository
	newsSummaryRepo   repository.NewsSummaryRepository
	scoreSnapshotRepo repository.ScoreSnapshotRepository
	telegramBot       telegram.Notifier
}

// NewReportGeneratorService creates a new ReportGeneratorService.
func NewReportGeneratorService(cfg *config.Config, log *logger.Logger,
	redisClient *redisPkg.Client,
	engine *scoring.Engine,
	assembler *report.Assembler,
	marketDataRepo repository.MarketDataRepository,
	tickerRepo repository.TickerRepository,
	tickerNewsRepo repository.TickerNewsRepository,
	tickerMentionRepo repository.TickerMentionRepository,
	newsSummaryRepo repository.NewsSummaryRepository,
	scoreSnapshotRepo repository.ScoreSnapshotRepository,
	telegramBot telegram.Notifier) ReportGeneratorService {
	return &reportGeneratorService{
		cfg:               cfg,
		log:               log,
		redisClient:       redisClient,
		engine:            engine,
		assembler:         assembler,
		marketDataRepo:    marketDataRepo,
		tickerRepo:        tickerRepo,
		tickerNewsRepo:    tickerNewsRepo,
		tickerMentionRepo: tickerMentionRepo,
		newsSummaryRepo:   newsSummaryRepo,
		scoreSnapshotRepo: scoreSnapshotRepo,
		telegramBot:       telegramBot,
	}
}

func (s *reportGeneratorService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamReportGenerate, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
	}).Result()
	if err != nil {

		// Ignore context cancellation and timeout errors, as they are expected during shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))

		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	// The task data is expected to be a JSON string in the 'payload' field.
	taskData, ok := message.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var streamData dto.StreamDataReportRun
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Processing report task", logger.StringField("symbol", streamData.Symbol), logger.StringField("interval", streamData.Interval), logger.StringField("range", streamData.Range))

	if err := s.Generate(ctx, streamData); err != nil {
		s.log.Error("Failed to generate report", logger.ErrorField(err), logger.Field("message_id", message.ID), logger.StringField("symbol", streamData.Symbol), logger.StringField("interval", streamData.Interval), logger.StringField("range", streamData.Range))
		return
	}
	if err := s.AckNDel(ctx, common.RedisStreamReportGenerate, message.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete report task", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Report task processed successfully", logger.StringField("symbol", streamData.Symbol), logger.StringField("interval", streamData.Interval), logger.StringField("range", streamData.Range))

}

// Generate runs the full pipeline for one symbol: fetch market data,
// normalize, score, assemble, persist, and optionally notify. A run that
// cannot produce a composite still assembles a degraded report.
func (s *reportGeneratorService) Generate(ctx context.Context, streamData dto.StreamDataReportRun) error {
	snapshot, err := s.marketDataRepo.GetSnapshot(ctx, dto.GetMarketDataParam{
		Symbol:   streamData.Symbol,
		Range:    streamData.Range,
		Interval: streamData.Interval,
	})
	if err != nil {
		s.log.Error("Failed to get market data", logger.ErrorField(err))
		return err
	}

	sector := ""
	companyName := streamData.Symbol
	ticker, err := s.tickerRepo.FindBySymbol(ctx, streamData.Symbol)
	if err != nil {
		s.log.Error("Failed to look up ticker", logger.ErrorField(err))
		return err
	}
	if ticker != nil {
		sector = ticker.Sector
		if ticker.Name != "" {
			companyName = ticker.Name
		}
	}

	record, err := scoring.Normalize(streamData.Symbol, snapshot.ToRaw(sector))
	if err != nil {
		s.log.Error("Failed to normalize market data", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
		return err
	}

	lookback := defaultNewsLookback
	if streamData.MaxNewsAgeInDays > 0 {
		lookback = time.Duration(streamData.MaxNewsAgeInDays*24) * time.Hour
	} else if s.cfg.News.LookbackWindow > 0 {
		lookback = s.cfg.News.LookbackWindow
	}
	cutoff := utils.TimeNowMarket().Add(-lookback)

	newsRows, err := s.tickerNewsRepo.FindNewsSince(ctx, streamData.Symbol, cutoff)
	if err != nil {
		s.log.Error("Failed to fetch news", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
		return err
	}
	mentions, err := s.tickerMentionRepo.FindMentionsSince(ctx, streamData.Symbol, cutoff)
	if err != nil {
		s.log.Error("Failed to fetch mentions", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
		return err
	}

	signals := buildSentimentSignals(newsRows, mentions)
	risks := buildRiskFlags(newsRows)

	// The stored digest is enrichment; a lookup failure degrades the news
	// section, not the report.
	newsDigest := ""
	if summary, err := s.newsSummaryRepo.GetLast(ctx, streamData.Symbol, cutoff); err != nil {
		s.log.Warn("Failed to fetch latest news summary", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
	} else if summary != nil {
		newsDigest = summary.ShortSummary
	}

	generatedAt := utils.TimeNowMarket()
	reportInput := report.Input{
		CompanyName: companyName,
		Record:      record,
		Signals:     signals,
		Risks:       risks,
		NewsDigest:  newsDigest,
		GeneratedAt: generatedAt,
	}

	outcome, err := s.engine.Evaluate(ctx, scoring.Input{
		Record:  record,
		Signals: signals,
		Risks:   risks,
	})
	if err != nil {
		var insufficient *scoring.InsufficientDataError
		if !errors.As(err, &insufficient) {
			s.log.Error("Failed to evaluate symbol", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
			return err
		}
		s.log.Warn("Composite unavailable, assembling degraded report",
			logger.StringField("symbol", streamData.Symbol), logger.ErrorField(err))
		reportInput.Recommendation = scoring.Recommendation{Category: scoring.NoRating}
		reportInput.StatusReason = insufficient.Error()
	} else {
		reportInput.Composite = outcome.Composite
		reportInput.Recommendation = outcome.Recommendation
	}

	rpt, err := s.assembler.Assemble(reportInput)
	if err != nil {
		s.log.Error("Failed to assemble report", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
		return err
	}

	// The assembled report is never persisted; the snapshot keeps the
	// scoring inputs and breakdown so a run can be audited later.
	data, err := json.Marshal(struct {
		Record         scoring.IndicatorRecord   `json:"record"`
		Signals        []scoring.SentimentSignal `json:"signals,omitempty"`
		Risks          []scoring.RiskFlag        `json:"risks,omitempty"`
		Composite      scoring.CompositeScore    `json:"composite"`
		Recommendation scoring.Recommendation    `json:"recommendation"`
	}{
		Record:         record,
		Signals:        signals,
		Risks:          risks,
		Composite:      rpt.Composite,
		Recommendation: rpt.Recommendation,
	})
	if err != nil {
		s.log.Error("Failed to marshal scoring breakdown", logger.ErrorField(err))
		return err
	}

	if err := s.scoreSnapshotRepo.Create(ctx, &entity.ScoreSnapshot{
		Symbol:         streamData.Symbol,
		Composite:      rpt.Composite.Value,
		Recommendation: string(rpt.Recommendation.Category),
		RiskVetoed:     rpt.Recommendation.Vetoed,
		Data:           data,
	}); err != nil {
		s.log.Error("Failed to create score snapshot", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
		return err
	}

	if streamData.NotifyUser {
		messages := []string{telegram.FormatReportMessage(rpt)}
		messages = append(messages, telegram.SplitMessage(report.RenderMarkdown(rpt))...)
		for _, msg := range messages {
			if err := s.telegramBot.SendMessage(msg); err != nil {
				// Delivery failure does not invalidate the stored snapshot.
				s.log.Error("Failed to send report notification", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
				break
			}
		}
	}

	return nil
}

func (s *reportGeneratorService) AckNDel(ctx context.Context, streamName string, messageID string) error {
	if err := s.redisClient.XAck(ctx, streamName, common.RedisStreamGroup, messageID).Err(); err != nil {
		s.log.Error("Failed to acknowledge report task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	if err := s.redisClient.XDel(ctx, streamName, messageID).Err(); err != nil {
		s.log.Error("Failed to delete report task", logger.ErrorField(err), logger.Field("message_id", messageID))
		return err
	}
	return nil
}

func (s *reportGeneratorService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamReportGenerate,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Research.RedisStreamReportMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to claim report task on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry no pending messages found", logger.StringField("stream", common.RedisStreamReportGenerate))
		return
	}

	s.log.Info("Found pending messages", logger.StringField("stream", common.RedisStreamReportGenerate))

	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamReportGenerate,
		Group:  common.RedisStreamGroup,
		Start:  msgs[0].ID,
		End:    msgs[0].ID,
		Count:  1,
	}).Result()

	if err != nil {
		s.log.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}

	if len(pendingInfo) == 0 {
		s.log.Warn("pending msg not found, but exist on xautoclaim",
			logger.StringField("stream", common.RedisStreamReportGenerate),
			logger.StringField("message_id", msgs[0].ID))
		return
	}

	msg := msgs[0]
	// The task data is expected to be a JSON string in the 'payload' field.
	taskData, ok := msg.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", msg.ID))
		return
	}

	var streamData dto.StreamDataReportRun
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Research.RedisStreamReportMaxRetry) {
		s.log.Error("pending msg retry count exceeded",
			logger.StringField("stream", common.RedisStreamReportGenerate),
			logger.StringField("message_id", msg.ID),
			logger.StringField("symbol", streamData.Symbol),
			logger.StringField("interval", streamData.Interval),
			logger.StringField("range", streamData.Range),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Research.RedisStreamReportMaxRetry),
		)
		msgTelegram := telegram.FormatErrorAlertMessage(utils.TimeNowMarket(), "Report Generator",
			fmt.Sprintf("Retry count exceeded for symbol %s, interval %s, range %s", streamData.Symbol, streamData.Interval, streamData.Range), taskData)
		if err := s.telegramBot.SendMessage(msgTelegram); err != nil {
			s.log.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol), logger.StringField("interval", streamData.Interval), logger.StringField("range", streamData.Range))
		}
		if err := s.AckNDel(ctx, common.RedisStreamReportGenerate, msg.ID); err != nil {
			s.log.Error("Failed to acknowledge and delete report task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
			return
		}
		return
	}

	if err := s.Generate(ctx, streamData); err != nil {
		s.log.Error("Failed to generate report", logger.ErrorField(err), logger.Field("message_id", msg.ID), logger.StringField("symbol", streamData.Symbol), logger.StringField("interval", streamData.Interval), logger.StringField("range", streamData.Range))
		return
	}

	if err := s.AckNDel(ctx, common.RedisStreamReportGenerate, msg.ID); err != nil {
		s.log.Error("Failed to acknowledge and delete report task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}
	s.log.Info("Retry report task processed successfully", logger.StringField("symbol", streamData.Symbol), logger.StringField("interval", streamData.Interval), logger.StringField("range", streamData.Range))
}

// buildSentimentSignals joins stored mentions with their article source so
// each signal carries where it came from.
func buildSentimentSignals(newsRows []entity.TickerNews, mentions []entity.TickerMention) []scoring.SentimentSignal {
	sourceByNewsID := make(map[uint]string, len(newsRows))
	for _, news := range newsRows {
		sourceByNewsID[news.ID] = news.Source
	}

	var signals []scoring.SentimentSignal
	for _, mention := range mentions {
		source := sourceByNewsID[mention.TickerNewsID]
		if source == "" {
			source = "unknown"
		}
		signals = append(signals, scoring.SentimentSignal{
			Source:      source,
			Polarity:    scoring.Polarity(mention.Polarity),
			Note:        mention.Note,
			PriceTarget: mention.PriceTarget,
		})
	}
	return signals
}

// buildRiskFlags re-scans article text for risk terms and collapses the
// matches to one flag per category. No articles means no risk assessment at
// all, which the risk scorer treats differently from a clean assessment.
func buildRiskFlags(newsRows []entity.TickerNews) []scoring.RiskFlag {
	if len(newsRows) == 0 {
		return nil
	}

	flags := []scoring.RiskFlag{}
	for _, news := range newsRows {
		flags = append(flags, sentiment.DetectFlags(news.Title+" "+news.RawContent)...)
	}
	return sentiment.MergeFlags(flags)
}
