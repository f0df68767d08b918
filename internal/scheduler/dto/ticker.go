package dto

import (
	"time"
)

// CreateTickerRequest is the DTO for registering a ticker in the research universe.
type CreateTickerRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// UpdateTickerRequest is the DTO for updating a registered ticker.
type UpdateTickerRequest struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// TickerResponse is the DTO for API responses containing ticker details.
type TickerResponse struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
