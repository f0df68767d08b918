package config

import (
	"time"

	"equity-reporter/internal/report"
	"equity-reporter/internal/scoring"
	"equity-reporter/pkg/config"
)

// Research holds research-service-specific configuration.
type Research struct {
	MaxConcurrentTasks              int           `mapstructure:"max_concurrent_tasks"`
	RedisStreamTaskExecutionTimeout time.Duration `mapstructure:"redis_stream_task_execution_timeout"`

	// Report generation stream
	RedisStreamReportTimeout         time.Duration `mapstructure:"redis_stream_report_timeout"`
	RedisStreamReportRetryInterval   time.Duration `mapstructure:"redis_stream_report_retry_interval"`
	RedisStreamReportMaxIdleDuration time.Duration `mapstructure:"redis_stream_report_max_idle_duration"`
	RedisStreamReportMaxRetry        int           `mapstructure:"redis_stream_report_max_retry"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// MarketData holds the configuration for the market data API.
type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// News holds configuration for the RSS news scraper.
type News struct {
	MaxConcurrentScrapes int           `mapstructure:"max_concurrent_scrapes"`
	LookbackWindow       time.Duration `mapstructure:"lookback_window"`
}

// Config holds the full configuration for the research service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	Research   Research        `mapstructure:"research"`
	Telegram   Telegram        `mapstructure:"telegram"`
	MarketData MarketData      `mapstructure:"market_data"`
	News       News            `mapstructure:"news"`
	Scoring    scoring.Config  `mapstructure:"scoring"`
	Report     report.Options  `mapstructure:"report"`
}

// Load loads the research service configuration from the given path.
// Scoring weights and thresholds fall back to their defaults when the file
// does not set them.
func Load(path string) (*Config, error) {
	cfg := Config{Scoring: scoring.DefaultConfig()}
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
