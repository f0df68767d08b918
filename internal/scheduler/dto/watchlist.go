package dto

import (
	"time"
)

// CreateWatchlistEntryRequest is the DTO for adding a symbol to the price watchlist.
type CreateWatchlistEntryRequest struct {
	Symbol          string  `json:"symbol"`
	ReferencePrice  float64 `json:"reference_price"`
	AlertAbovePrice float64 `json:"alert_above_price"`
	AlertBelowPrice float64 `json:"alert_below_price"`
	IsActive        *bool   `json:"is_active"`
}

// UpdateWatchlistEntryRequest is the DTO for updating a watchlist entry.
// Alert thresholds of zero disable the corresponding side.
type UpdateWatchlistEntryRequest struct {
	ReferencePrice  float64 `json:"reference_price"`
	AlertAbovePrice float64 `json:"alert_above_price"`
	AlertBelowPrice float64 `json:"alert_below_price"`
	IsActive        *bool   `json:"is_active"`
	ResetAlert      bool    `json:"reset_alert"`
}

// WatchlistEntryResponse is the DTO for API responses containing watchlist entry details.
type WatchlistEntryResponse struct {
	ID               uint      `json:"id"`
	Symbol           string    `json:"symbol"`
	ReferencePrice   float64   `json:"reference_price"`
	AlertAbovePrice  float64   `json:"alert_above_price"`
	AlertBelowPrice  float64   `json:"alert_below_price"`
	AddedDate        time.Time `json:"added_date"`
	IsActive         bool      `json:"is_active"`
	IsAlertTriggered bool      `json:"is_alert_triggered"`
	LastAlertedAt    time.Time `json:"last_alerted_at"`
	CreatedAt        time.Time `json:"created_at"`
}
