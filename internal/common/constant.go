// Package common contains shared constants and sentinel errors used across
// MindLens components.
package common

// Sentiment buckets stored on an entry record.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)
