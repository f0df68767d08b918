package entity

import "time"

type WatchlistEntry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Symbol           string    `gorm:"not null" json:"symbol"`
	ReferencePrice   float64   `gorm:"not null" json:"reference_price"`
	AlertAbovePrice  float64   `gorm:"not null" json:"alert_above_price"`
	AlertBelowPrice  float64   `gorm:"not null" json:"alert_below_price"`
	AddedDate        time.Time `gorm:"not null" json:"added_date"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	IsAlertTriggered bool      `gorm:"not null" json:"is_alert_triggered"`
	LastAlertedAt    time.Time `json:"last_alerted_at"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}
