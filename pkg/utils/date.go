package utils

import (
	"log"
	"time"
)

// GetMarketTimeLocation returns the US equity market timezone.
func GetMarketTimeLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

// TimeNowMarket returns the current time in the market timezone.
func TimeNowMarket() time.Time {
	return time.Now().In(GetMarketTimeLocation())
}

// PrettyDate formats a time for human-facing messages.
func PrettyDate(t time.Time) string {
	return t.In(GetMarketTimeLocation()).Format("02 Jan 2006 15:04")
}
