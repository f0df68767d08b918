package entity

import (
	"time"

	"github.com/lib/pq"
)

// TickerNews represents a news article fetched from an RSS feed.
type TickerNews struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Title          string           `gorm:"not null" json:"title"`
	Link           string           `gorm:"unique;not null" json:"link"`
	PublishedAt    *time.Time       `json:"published_at,omitempty"`
	RawContent     string           `json:"raw_content"`
	HashIdentifier string           `gorm:"unique;not null" json:"hash_identifier"`
	Source         string           `json:"source"`
	FeedLink       string           `json:"feed_link"`
	Keywords       pq.StringArray   `gorm:"type:text[]" json:"keywords"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	Mentions       []TickerMention  `gorm:"foreignKey:TickerNewsID" json:"mentions"`
}

// TableName specifies the table name for the TickerNews model.
func (TickerNews) TableName() string {
	return "ticker_news"
}

// TickerMention links an article to a ticker with the polarity the
// lexicon classifier assigned to it.
type TickerMention struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TickerNewsID uint      `json:"ticker_news_id"`
	Symbol       string    `gorm:"not null;index" json:"symbol"`
	Polarity     string    `gorm:"not null" json:"polarity"`
	Note         string    `json:"note"`
	PriceTarget  *float64  `json:"price_target,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TickerMention) TableName() string {
	return "ticker_mentions"
}
