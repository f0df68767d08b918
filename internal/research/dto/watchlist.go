package dto

// GetWatchlistParam filters watchlist entries. At least one filter must be
// set.
type GetWatchlistParam struct {
	IDs       []uint
	Symbols   []string
	IsActive  *bool
	Triggered *bool
}
