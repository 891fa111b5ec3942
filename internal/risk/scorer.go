package risk

import "strings"

// Label is the coarse risk classification derived from a normalized score.
type Label string

const (
	LabelLow      Label = "Low"
	LabelModerate Label = "Moderate"
	LabelHigh     Label = "High"
)

// Band boundaries. Lower bounds are inclusive, so a score of exactly 0.7
// classifies as High and exactly 0.4 as Moderate.
const (
	highBand     = 0.7
	moderateBand = 0.4
)

// Category names reported in Assessment.Categories, in fixed order.
const (
	CategoryHighRisk   = "high_risk"
	CategoryMediumRisk = "medium_risk"
	CategoryProtective = "protective"
)

// Assessment is the result of scoring one text. It is a pure projection of
// the text: scoring the same text again yields the identical result.
type Assessment struct {
	Score      float64
	Label      Label
	Categories []string
}

// Scorer computes a deterministic risk score from entry text using a
// weighted keyword rule engine. It performs no I/O and never fails.
type Scorer struct {
	lex        Lexicon
	high       [][]string
	medium     [][]string
	protective [][]string
}

// NewScorer builds a Scorer for the given lexicon. The lexicon is captured
// by value and never modified.
func NewScorer(lex Lexicon) *Scorer {
	return &Scorer{
		lex:        lex,
		high:       tokenizeTerms(lex.HighRisk),
		medium:     tokenizeTerms(lex.MediumRisk),
		protective: tokenizeTerms(lex.Protective),
	}
}

// Score analyzes text and returns its risk assessment. Matching is
// word-boundary aware and counts every occurrence, so repeated distress
// language escalates the score. Empty or whitespace-only text scores
// 0.0/Low.
func (s *Scorer) Score(text string) Assessment {
	tokens := normalize(text)
	if len(tokens) == 0 {
		return Assessment{Score: 0, Label: LabelLow}
	}

	highHits := countMatches(tokens, s.high)
	mediumHits := countMatches(tokens, s.medium)
	protectiveHits := countMatches(tokens, s.protective)

	raw := float64(highHits)*s.lex.HighWeight +
		float64(mediumHits)*s.lex.MediumWeight +
		float64(protectiveHits)*s.lex.ProtectiveWeight

	score := raw / s.lex.Saturation
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	var categories []string
	if highHits > 0 {
		categories = append(categories, CategoryHighRisk)
	}
	if mediumHits > 0 {
		categories = append(categories, CategoryMediumRisk)
	}
	if protectiveHits > 0 {
		categories = append(categories, CategoryProtective)
	}

	return Assessment{Score: score, Label: Classify(score), Categories: categories}
}

// Classify maps a normalized score to its band. Boundary values resolve to
// the higher band.
func Classify(score float64) Label {
	switch {
	case score >= highBand:
		return LabelHigh
	case score >= moderateBand:
		return LabelModerate
	default:
		return LabelLow
	}
}

// normalize lowercases text, drops apostrophes (so "don't" matches "dont")
// and splits on every other non-alphanumeric rune.
func normalize(text string) []string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\'' || r == '’':
			// drop
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func tokenizeTerms(terms []string) [][]string {
	out := make([][]string, 0, len(terms))
	for _, t := range terms {
		if phrase := normalize(t); len(phrase) > 0 {
			out = append(out, phrase)
		}
	}
	return out
}

// countMatches counts, over all phrases, every token position where the
// phrase occurs. Occurrences are not de-duplicated.
func countMatches(tokens []string, phrases [][]string) int {
	total := 0
	for _, phrase := range phrases {
		for i := 0; i+len(phrase) <= len(tokens); i++ {
			match := true
			for j, w := range phrase {
				if tokens[i+j] != w {
					match = false
					break
				}
			}
			if match {
				total++
			}
		}
	}
	return total
}
