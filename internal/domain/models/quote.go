package models

import "time"

// Quote is the current snapshot a provider returns for one ticker.
//
// Volume is the number of shares traded so far today, not a monetary
// figure; callers multiply by Price to obtain the financial volume.
type Quote struct {
	Symbol string  `json:"symbol" example:"PETR4"`
	Price  float64 `json:"price" example:"38.42"`
	Volume int64   `json:"volume" example:"21500000"`
}

// DailyBar is one day of a ticker's price history.
type DailyBar struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close" example:"37.90"`
	Volume int64     `json:"volume" example:"18300000"`
}
