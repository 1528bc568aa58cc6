package sentiment

import (
	"strings"

	"MarketPulse/internal/domain/models"
)

var (
	positiveWords = []string{"surge", "gain", "up", "rise", "grow", "improve", "positive", "bull"}
	negativeWords = []string{"drop", "fall", "down", "decline", "loss", "negative", "bear", "crash"}
)

// Neutral is reported when there is nothing to score.
func Neutral() models.Sentiment {
	return models.Sentiment{
		Label:      "neutral",
		Score:      0.5,
		Positive:   0.33,
		Negative:   0.33,
		Neutral:    0.34,
		Confidence: 0.5,
		Trend:      "stable",
	}
}

// Headline scores one title by keyword hits: >0 positive, <0 negative.
func Headline(title string) int {
	text := strings.ToLower(title)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			score--
		}
	}
	return score
}

// Analyze aggregates the headline tone of up to the first 10 articles.
func Analyze(articles []models.NewsArticle) models.Sentiment {
	if len(articles) > 10 {
		articles = articles[:10]
	}
	if len(articles) == 0 {
		return Neutral()
	}

	var pos, neg, neu float64
	for _, a := range articles {
		switch s := Headline(a.Title); {
		case s > 0:
			pos++
		case s < 0:
			neg++
		default:
			neu++
		}
	}
	total := float64(len(articles))
	score := (pos + 0.5*neu) / total

	confidence := (pos - neg) / total
	if confidence < 0 {
		confidence = -confidence
	}

	return models.Sentiment{
		Label:      label(score),
		Score:      score,
		Positive:   pos / total,
		Negative:   neg / total,
		Neutral:    neu / total,
		Confidence: confidence,
		Trend:      trend(score),
	}
}

func label(score float64) string {
	switch {
	case score > 0.6:
		return "positive"
	case score < 0.4:
		return "negative"
	default:
		return "neutral"
	}
}

func trend(score float64) string {
	switch {
	case score > 0.7:
		return "strongly_positive"
	case score > 0.6:
		return "positive"
	case score < 0.3:
		return "strongly_negative"
	case score < 0.4:
		return "negative"
	default:
		return "stable"
	}
}
