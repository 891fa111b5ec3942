// Package sentiment derives a coarse sentiment bucket from emotion labels.
package sentiment

import (
	"strings"

	"github.com/dmitrijs2005/mindlens/internal/common"
)

// emotionBuckets maps emotion labels (GoEmotions vocabulary) to sentiment
// buckets. Unknown labels count as neutral.
var emotionBuckets = map[string]string{
	"joy":         common.SentimentPositive,
	"admiration":  common.SentimentPositive,
	"amusement":   common.SentimentPositive,
	"approval":    common.SentimentPositive,
	"excitement":  common.SentimentPositive,
	"gratitude":   common.SentimentPositive,
	"love":        common.SentimentPositive,
	"optimism":    common.SentimentPositive,
	"pride":       common.SentimentPositive,
	"relief":      common.SentimentPositive,
	"desire":      common.SentimentPositive,
	"caring":      common.SentimentPositive,
	"curiosity":   common.SentimentPositive,
	"surprise":    common.SentimentPositive,
	"anger":       common.SentimentNegative,
	"annoyance":   common.SentimentNegative,
	"disappointment": common.SentimentNegative,
	"disapproval": common.SentimentNegative,
	"embarrassment": common.SentimentNegative,
	"fear":        common.SentimentNegative,
	"grief":       common.SentimentNegative,
	"nervousness": common.SentimentNegative,
	"remorse":     common.SentimentNegative,
	"sadness":     common.SentimentNegative,
	"disgust":     common.SentimentNegative,
	"confusion":   common.SentimentNegative,
	"anxiety":     common.SentimentNegative,
	"realization": common.SentimentNeutral,
	"neutral":     common.SentimentNeutral,
	"boredom":     common.SentimentNeutral,
}

// FromEmotions returns the majority sentiment bucket of the given emotion
// labels. Ties (including an empty input) resolve to neutral.
func FromEmotions(emotions []string) string {
	if len(emotions) == 0 {
		return common.SentimentNeutral
	}

	counts := map[string]int{}
	for _, e := range emotions {
		bucket, ok := emotionBuckets[strings.ToLower(e)]
		if !ok {
			bucket = common.SentimentNeutral
		}
		counts[bucket]++
	}

	pos, neg, neu := counts[common.SentimentPositive], counts[common.SentimentNegative], counts[common.SentimentNeutral]
	if pos > neg && pos > neu {
		return common.SentimentPositive
	}
	if neg > pos && neg > neu {
		return common.SentimentNegative
	}
	return common.SentimentNeutral
}
