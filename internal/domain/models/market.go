package models

import "time"

// Sector is one cell of the sector grid.
type Sector struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
}

// MacroLeg is a proxy instrument in the macro view. A failed fetch leaves it zeroed.
type MacroLeg struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Volume        float64 `json:"volume"`
}

// Indicator is the latest reading of an economic series.
type Indicator struct {
	SeriesID string  `json:"seriesId"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
	Date     string  `json:"date"`
}

type GDPReading struct {
	Period      string  `json:"period"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

type MacroView struct {
	Bonds      MacroLeg    `json:"bonds"`
	Dollar     MacroLeg    `json:"dollar"`
	Crypto     MacroLeg    `json:"crypto"`
	Treasury10 MacroLeg    `json:"treasury10y"`
	Indicators []Indicator `json:"indicators"`
	GDP        *GDPReading `json:"gdp,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Risk levels for a mover.
const (
	RiskVeryLow  = "Very Low"
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
)

// NoSignificantMove is the reason carried by a mover result with Found=false.
const NoSignificantMove = "no significant move"

// Mover is the watch-list instrument with the largest absolute move.
type Mover struct {
	Found     bool          `json:"found"`
	Reason    string        `json:"reason,omitempty"`
	Quote     *Quote        `json:"quote,omitempty"`
	Reasons   []string      `json:"reasons,omitempty"`
	RiskScore int           `json:"riskScore,omitempty"`
	RiskLevel string        `json:"riskLevel,omitempty"`
	Sentiment *Sentiment    `json:"sentiment,omitempty"`
	News      []NewsArticle `json:"news"`
	Timestamp time.Time     `json:"timestamp"`
}

// MoverRecord is one entry of the mover history.
type MoverRecord struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"changePercent"`
	RiskLevel     string    `json:"riskLevel"`
	RecordedAt    time.Time `json:"recordedAt"`
}

type Theme struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Symbols     []string `json:"symbols"`
}

type ThemePerformance struct {
	Daily    float64 `json:"daily"`
	Trend    string  `json:"trend"`
	Strength string  `json:"strength"`
}

type ThemeView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
	Stocks      []Quote          `json:"stocks"`
	Performance ThemePerformance `json:"performance"`
}

// Market sessions in exchange local time.
const (
	SessionOpen       = "OPEN"
	SessionPreMarket  = "PRE_MARKET"
	SessionAfterHours = "AFTER_HOURS"
	SessionClosed     = "CLOSED"
)

type MarketStatus struct {
	Status    string    `json:"status"`
	IsOpen    bool      `json:"isOpen"`
	LocalTime string    `json:"localTime"`
	Timezone  string    `json:"timezone"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is recomputed wholesale on every request and broadcast tick.
type Snapshot struct {
	Indices     []Quote        `json:"indices"`
	Sectors     []Sector       `json:"sectors"`
	Macro       MacroView      `json:"macro"`
	Gainers     []Quote        `json:"gainers"`
	Losers      []Quote        `json:"losers"`
	News        []NewsArticle  `json:"news"`
	Score       *MarketScore   `json:"score,omitempty"`
	Analysis    MarketAnalysis `json:"analysis"`
	Status      MarketStatus   `json:"status"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// PushMessage is the frame sent on the push channel.
type PushMessage struct {
	Type      string    `json:"type"`
	Data      *Snapshot `json:"data"`
	Timestamp int64     `json:"timestamp"`
}

const PushMarketUpdate = "MARKET_UPDATE"
