package models

import "time"

type ScoreOverall struct {
	Score     int       `json:"score"`
	Grade     string    `json:"grade"`
	Timestamp time.Time `json:"timestamp"`
}

type ScoreComponent struct {
	Score   float64           `json:"score"`
	Grade   string            `json:"grade"`
	Metrics map[string]string `json:"metrics"`
}

type ScoreComponents struct {
	Technical  ScoreComponent `json:"technical"`
	Volatility ScoreComponent `json:"volatility"`
	Momentum   ScoreComponent `json:"momentum"`
}

type ScoreAnalysis struct {
	Summary   string `json:"summary"`
	Technical string `json:"technical"`
	Risk      string `json:"risk"`
}

// MarketScore is the graded market-health view.
type MarketScore struct {
	Overall    ScoreOverall    `json:"overall"`
	Components ScoreComponents `json:"components"`
	Analysis   ScoreAnalysis   `json:"analysis"`
}

// ScoreLeg is one index as seen by the score. AvgVolume 0 means unknown.
type ScoreLeg struct {
	ChangePercent float64
	Volume        float64
	AvgVolume     float64
}

// ScoreInputs are what the market score is built from. VIX 0 means unknown.
type ScoreInputs struct {
	SPY ScoreLeg
	QQQ ScoreLeg
	VIX float64
}

// Breadth is the share of sectors trading up, with the two strongest and
// two weakest sector names.
type Breadth struct {
	Percent  float64  `json:"percent"`
	Quality  string   `json:"quality"`
	Leaders  []string `json:"leaders"`
	Laggards []string `json:"laggards"`
}

// MarketAnalysis is the narrative read of a snapshot.
type MarketAnalysis struct {
	Trend        string  `json:"trend"`
	Breadth      Breadth `json:"breadth"`
	Overview     string  `json:"overview"`
	Sectors      string  `json:"sectors"`
	Risk         string  `json:"risk"`
	Implications string  `json:"implications"`
}
