package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"equity-reporter/internal/report"
	"equity-reporter/internal/research/config"
	"equity-reporter/internal/research/delivery/consumer"
	"equity-reporter/internal/research/repository"
	"equity-reporter/internal/research/service"
	"equity-reporter/internal/research/strategy"
	"equity-reporter/internal/scoring"
	"equity-reporter/pkg/common"
	"equity-reporter/pkg/logger"
	"equity-reporter/pkg/postgres"
	"equity-reporter/pkg/redis"
	"equity-reporter/pkg/telegram"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the research service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Research Service", zap.String("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Create the consumer groups if they don't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamSchedulerTaskExecution, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamReportGenerate, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	historyRepo := repository.NewTaskExecutionHistoryRepository(db.DB)
	tickerRepo := repository.NewTickerRepository(db.DB)
	tickerNewsRepo := repository.NewTickerNewsRepository(db.DB)
	tickerMentionRepo := repository.NewTickerMentionRepository(db.DB)
	newsSummaryRepo := repository.NewNewsSummaryRepository(db.DB)
	scoreSnapshotRepo := repository.NewScoreSnapshotRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	marketDataRepo := repository.NewMarketDataRepository(cfg, appLogger)

	// Initialize the scoring engine and report assembler
	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		appLogger.Fatal("Failed to initialize scoring engine", zap.Error(err))
	}
	assembler := report.NewAssembler(cfg.Report)

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
	}

	// Initialize Strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewHTTPStrategy(appLogger),
		strategy.NewNewsScraperStrategy(
			appLogger,
			tickerRepo,
			tickerNewsRepo,
		),
		strategy.NewNewsSummaryStrategy(
			appLogger,
			tickerRepo,
			tickerNewsRepo,
			tickerMentionRepo,
			newsSummaryRepo,
			telegramNotifier,
		),
		strategy.NewReportRunStrategy(appLogger, redisClient, tickerRepo),
		strategy.NewWatchlistAlertStrategy(
			appLogger,
			marketDataRepo,
			telegramNotifier,
			watchlistRepo,
			redisClient,
		),
	}

	// Initialize services
	jobExecutorSvc := service.NewJobExecutorService(redisClient, jobRepo, historyRepo, appLogger, strategies)
	reportGeneratorSvc := service.NewReportGeneratorService(cfg, appLogger, redisClient, engine, assembler, marketDataRepo, tickerRepo, tickerNewsRepo, tickerMentionRepo, newsSummaryRepo, scoreSnapshotRepo, telegramNotifier)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient, jobExecutorSvc, reportGeneratorSvc, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Research service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down research service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Research service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "research-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-research.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing research-service CLI: %s\n", err)
		os.Exit(1)
	}
}
