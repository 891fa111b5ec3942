package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexicon_TermSetsAreDisjoint(t *testing.T) {
	lex := DefaultLexicon()

	seen := map[string]string{}
	for _, set := range []struct {
		name  string
		terms []string
	}{
		{"high", lex.HighRisk},
		{"medium", lex.MediumRisk},
		{"protective", lex.Protective},
	} {
		for _, term := range set.terms {
			if prev, ok := seen[term]; ok {
				t.Fatalf("term %q appears in both %s and %s", term, prev, set.name)
			}
			seen[term] = set.name
		}
	}
}

func TestLoadLexicon_BackfillsWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"high_risk":["doom"],"medium_risk":["gloom"]}`), 0o600))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	def := DefaultLexicon()
	assert.Equal(t, []string{"doom"}, lex.HighRisk)
	assert.Equal(t, []string{"gloom"}, lex.MediumRisk)
	assert.Equal(t, def.HighWeight, lex.HighWeight)
	assert.Equal(t, def.MediumWeight, lex.MediumWeight)
	assert.Equal(t, def.ProtectiveWeight, lex.ProtectiveWeight)
	assert.Equal(t, def.Saturation, lex.Saturation)
}

func TestLoadLexicon_Errors(t *testing.T) {
	_, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = LoadLexicon(path)
	require.Error(t, err)
}
