package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TickerNewsRepository defines the interface for interacting with ticker news data.
type TickerNewsRepository interface {
	Create(ctx context.Context, news *entity.TickerNews) error
	CreateIgnoreConflict(ctx context.Context, news *entity.TickerNews) error
	FindExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error)
	FindRankedNews(ctx context.Context, symbol string, maxNews int, maxNewsAgeInDays int, priorityDomains []string) ([]entity.TickerNews, error)
	FindNewsSince(ctx context.Context, symbol string, since time.Time) ([]entity.TickerNews, error)
}

// NewTickerNewsRepository creates a new instance of TickerNewsRepository.
func NewTickerNewsRepository(db *gorm.DB) TickerNewsRepository {
	return &tickerNewsRepository{
		db: db,
	}
}

type tickerNewsRepository struct {
	db *gorm.DB
}

// Create saves a news article and its mentions to the database.
func (r *tickerNewsRepository) Create(ctx context.Context, news *entity.TickerNews) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// CreateIgnoreConflict inserts the article unless its hash already exists,
// then attaches the mentions only when the article row was actually written.
func (r *tickerNewsRepository) CreateIgnoreConflict(ctx context.Context, news *entity.TickerNews) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mentions := news.Mentions
		news.Mentions = nil
		txInner := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash_identifier"}},
			DoNothing: true,
		}).Create(news)

		if txInner.Error != nil {
			return txInner.Error
		}

		if txInner.RowsAffected == 0 {
			return nil
		}

		if len(mentions) == 0 {
			return nil
		}

		for i := range mentions {
			mentions[i].TickerNewsID = news.ID
		}

		if err := tx.Create(&mentions).Error; err != nil {
			return fmt.Errorf("insert ticker_mentions error: %w", err)
		}

		return nil
	})
}

// FindExistingHashes returns which of the given hash identifiers are already stored.
func (r *tickerNewsRepository) FindExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(hashes) == 0 {
		return existing, nil
	}

	var rows []entity.TickerNews
	err := r.db.WithContext(ctx).Table("ticker_news").Select("id", "hash_identifier").
		Where("hash_identifier IN ?", hashes).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		existing[row.HashIdentifier] = true
	}
	return existing, nil
}

// FindRankedNews returns the freshest articles mentioning a symbol, priority
// domains first, then by recency score.
func (r *tickerNewsRepository) FindRankedNews(ctx context.Context, symbol string, maxNews int, maxNewsAgeInDays int, priorityDomains []string) ([]entity.TickerNews, error) {
	var (
		qBuilder strings.Builder
		news     []entity.TickerNews
		qParam   = []interface{}{}
	)

	qBuilder.WriteString(fmt.Sprintf(`
	SELECT
		tn.id,
		tn.title,
		tn.link,
		tn.published_at,
		tn.source,
		tn.keywords,
		GREATEST(0, 1 - (EXTRACT(EPOCH FROM (NOW() - tn.published_at)) / 86400) / %.2f) AS recency_score
	FROM ticker_news AS tn
	JOIN ticker_mentions AS tm ON tm.ticker_news_id = tn.id
	WHERE tm.symbol = ?
	AND tn.published_at >= NOW() - INTERVAL '%d days'
`, float64(maxNewsAgeInDays), maxNewsAgeInDays))

	qParam = append(qParam, symbol)
	if len(priorityDomains) > 0 {
		qBuilder.WriteString(" ORDER BY CASE WHEN tn.source IN ? THEN 0 ELSE 1 END, recency_score DESC")
		qParam = append(qParam, priorityDomains)
	} else {
		qBuilder.WriteString(" ORDER BY recency_score DESC")
	}
	qBuilder.WriteString(" LIMIT ?")
	qParam = append(qParam, maxNews)

	err := r.db.WithContext(ctx).Raw(qBuilder.String(), qParam...).Scan(&news).Error
	if err != nil {
		return nil, err
	}

	return news, nil
}

// FindNewsSince returns all articles mentioning a symbol published after the cutoff.
func (r *tickerNewsRepository) FindNewsSince(ctx context.Context, symbol string, since time.Time) ([]entity.TickerNews, error) {
	var news []entity.TickerNews
	err := r.db.WithContext(ctx).
		Joins("JOIN ticker_mentions tm ON tm.ticker_news_id = ticker_news.id").
		Where("tm.symbol = ? AND ticker_news.published_at >= ?", symbol, since).
		Order("ticker_news.published_at DESC").
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}
