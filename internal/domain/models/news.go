package models

import "time"

// NewsArticle is a normalized search result used for move narratives.
type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Sentiment summarizes headline tone as shares of the article set.
type Sentiment struct {
	Label      string  `json:"sentiment"`
	Score      float64 `json:"score"`
	Positive   float64 `json:"positive"`
	Negative   float64 `json:"negative"`
	Neutral    float64 `json:"neutral"`
	Confidence float64 `json:"confidence"`
	Trend      string  `json:"trend"`
}
