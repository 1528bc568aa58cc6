package models

import "time"

// Quote is the normalized price record for one instrument. Produced on every
// successful upstream fetch and never mutated afterwards.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// Direction is "up" for non-negative moves and "down" otherwise.
func (q Quote) Direction() string {
	if q.ChangePercent < 0 {
		return "down"
	}
	return "up"
}

// HistoryPoint is one daily close with its trailing 200-day average.
type HistoryPoint struct {
	Date   string   `json:"date"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume float64  `json:"volume"`
	MA200  *float64 `json:"ma200"`
}

type StockHistory struct {
	Symbol string         `json:"symbol"`
	Points []HistoryPoint `json:"points"`
}

// Bar is a normalized end-of-day candle.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

type SearchResult struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Exchange      string  `json:"exchange"`
	Type          string  `json:"type"`
	Country       string  `json:"country"`
	Currency      string  `json:"currency"`
	PreviousClose float64 `json:"previousClose"`
}
