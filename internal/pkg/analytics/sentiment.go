package analytics

import (
	"math"
	"strings"
)

// Sentiment labels
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

const sentimentThreshold = 0.2

// Keywords match as plain substrings, so "dislike" also counts as "like"
// and "unclear" also counts as "clear".
var (
	positiveKeywords = []string{
		"good", "great", "excellent", "enjoy", "like", "love", "happy",
		"helpful", "clear", "interesting", "engaging", "supportive",
		"understanding", "patient",
	}
	negativeKeywords = []string{
		"bad", "poor", "terrible", "hate", "dislike", "difficult", "struggle",
		"confusing", "boring", "frustrating", "overwhelming", "unclear",
		"unhelpful", "disappointed",
	}
)

// SentimentResult is the outcome of ScoreSentiment
type SentimentResult struct {
	Score   float64   `json:"sentiment_score"`
	Label   Sentiment `json:"sentiment_label"`
	Percent int       `json:"sentiment_score_percent"`
}

// ScoreSentiment counts each keyword at most once and scores the balance of
// positive and negative hits in [-1, 1].
func ScoreSentiment(text string) SentimentResult {
	text = strings.ToLower(text)
	pos := countKeywords(text, positiveKeywords)
	neg := countKeywords(text, negativeKeywords)

	var score float64
	if total := pos + neg; total > 0 {
		score = float64(pos-neg) / float64(total)
	}

	label := SentimentNeutral
	switch {
	case score > sentimentThreshold:
		label = SentimentPositive
	case score < -sentimentThreshold:
		label = SentimentNegative
	}

	return SentimentResult{
		Score:   score,
		Label:   label,
		Percent: int(math.RoundToEven((score + 1) / 2 * 100)),
	}
}

func countKeywords(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
