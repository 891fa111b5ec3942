package risk

import (
	"encoding/json"
	"fmt"
	"os"
)

// Lexicon is the immutable keyword configuration of the scorer. The three
// term sets are disjoint; each matched occurrence contributes its category
// weight to the raw score. Terms may be multi-word phrases.
type Lexicon struct {
	HighRisk   []string `json:"high_risk"`
	MediumRisk []string `json:"medium_risk"`
	Protective []string `json:"protective"`

	HighWeight       float64 `json:"high_weight"`
	MediumWeight     float64 `json:"medium_weight"`
	ProtectiveWeight float64 `json:"protective_weight"`

	// Saturation is the raw weight that maps to a score of 1.0. With the
	// default weights, three high-risk hits saturate the scale.
	Saturation float64 `json:"saturation"`
}

// DefaultLexicon returns the built-in keyword configuration.
func DefaultLexicon() Lexicon {
	return Lexicon{
		HighRisk: []string{
			"suicide", "kill myself", "end it all", "not worth living",
			"want to die", "end my life", "take my life", "hurt myself",
			"self harm", "cut myself", "overdose", "hang myself",
			"no point", "hopeless", "worthless", "deserve to die",
			"better off dead", "world without me", "nobody cares",
			"better off without me", "hate myself",
		},
		MediumRisk: []string{
			"depressed", "sad", "empty", "numb", "lonely", "isolated",
			"anxious", "worried", "scared", "afraid", "panic", "overwhelmed",
			"exhausted", "drained", "burned out", "stressed",
			"angry", "rage", "furious", "bitter",
			"lost", "purposeless", "aimless", "struggling", "depression",
			"dark thoughts", "cant cope", "cant handle",
			"lost hope", "losing hope", "falling apart",
		},
		Protective: []string{
			"happy", "excited", "joy", "great", "wonderful", "amazing",
			"fantastic", "better", "improving", "progress", "success",
			"achievement", "proud", "confident", "hopeful", "optimistic",
			"grateful", "thankful", "blessed", "content",
			"will pass", "temporary", "feeling better", "getting better",
			"looking forward", "can handle", "will get through",
		},
		HighWeight:       4,
		MediumWeight:     2,
		ProtectiveWeight: -1,
		Saturation:       12,
	}
}

// LoadLexicon reads a Lexicon from a JSON file. Zero weights and saturation
// are backfilled from the defaults so a file may override only the term sets.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}

	var lex Lexicon
	if err := json.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}

	def := DefaultLexicon()
	if lex.HighWeight == 0 {
		lex.HighWeight = def.HighWeight
	}
	if lex.MediumWeight == 0 {
		lex.MediumWeight = def.MediumWeight
	}
	if lex.ProtectiveWeight == 0 {
		lex.ProtectiveWeight = def.ProtectiveWeight
	}
	if lex.Saturation <= 0 {
		lex.Saturation = def.Saturation
	}

	return lex, nil
}
