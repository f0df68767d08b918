package repository

import (
	"context"
	"time"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
)

// TickerMentionRepository defines the interface for interacting with ticker mention data.
type TickerMentionRepository interface {
	SaveAll(ctx context.Context, mentions []entity.TickerMention) error
	FindMentionsSince(ctx context.Context, symbol string, since time.Time) ([]entity.TickerMention, error)
}

// NewTickerMentionRepository creates a new instance of TickerMentionRepository.
func NewTickerMentionRepository(db *gorm.DB) TickerMentionRepository {
	return &tickerMentionRepository{
		db: db,
	}
}

type tickerMentionRepository struct {
	db *gorm.DB
}

// SaveAll persists a batch of mentions in one insert.
func (r *tickerMentionRepository) SaveAll(ctx context.Context, mentions []entity.TickerMention) error {
	if len(mentions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&mentions).Error
}

// FindMentionsSince returns mentions of a symbol attached to articles published after the cutoff.
func (r *tickerMentionRepository) FindMentionsSince(ctx context.Context, symbol string, since time.Time) ([]entity.TickerMention, error) {
	var mentions []entity.TickerMention
	err := r.db.WithContext(ctx).
		Joins("JOIN ticker_news tn ON tn.id = ticker_mentions.ticker_news_id").
		Where("ticker_mentions.symbol = ? AND tn.published_at >= ?", symbol, since).
		Order("tn.published_at DESC").
		Find(&mentions).Error
	if err != nil {
		return nil, err
	}
	return mentions, nil
}
