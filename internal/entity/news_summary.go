package entity

import (
	"time"

	"github.com/lib/pq"
)

// NewsSummary aggregates the classified mentions of one ticker over a window.
type NewsSummary struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Symbol         string         `gorm:"type:varchar(50);not null" json:"symbol"`
	Polarity       string         `gorm:"type:varchar(50)" json:"polarity"`
	MeanPolarity   float64        `json:"mean_polarity"`
	ArticleCount   int            `json:"article_count"`
	BullishCount   int            `json:"bullish_count"`
	BearishCount   int            `json:"bearish_count"`
	NeutralCount   int            `json:"neutral_count"`
	KeyIssues      pq.StringArray `gorm:"type:text[]" json:"key_issues"`
	ShortSummary   string         `gorm:"type:text" json:"short_summary"`
	SummaryStart   time.Time      `json:"summary_start"`
	SummaryEnd     time.Time      `json:"summary_end"`
	HashIdentifier string         `gorm:"type:text;not null" json:"hash_identifier"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the NewsSummary model.
func (NewsSummary) TableName() string {
	return "news_summaries"
}
