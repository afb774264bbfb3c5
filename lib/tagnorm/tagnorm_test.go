package tagnorm

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testMap() SynonymMap {
	return SynonymMap{
		"ui":             "ui",
		"user interface": "ui",
		"ui design":      "ui",
		"bug":            "bug",
		"bugs":           "bug",
		"crash":          "crash",
	}
}

func TestParseLabels(t *testing.T) {
	for _, tc := range []struct {
		name   string
		raw    string
		tokens []string
	}{
		{"double quoted", `["UI", "bugs"]`, []string{"UI", "bugs"}},
		{"single quoted", `['UI', 'bugs']`, []string{"UI", "bugs"}},
		{"mixed quoting", `["UI", 'bugs', "crash"]`, []string{"UI", "bugs", "crash"}},
		{"bare comma list in brackets", `[ui, bugs]`, []string{"ui", "bugs"}},
		{"quotes without brackets", `"ui", "bugs"`, []string{"ui", "bugs"}},
		{"stray whitespace", `[ " ui " ,   "bugs" ]`, []string{"ui", "bugs"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := ParseLabels(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.tokens, tokens)
		})
	}
}

func TestParseLabelsRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"error",
		"ERROR",
		"The review is mostly about bugs, and also performance.",
		// apostrophes must not read as single-quote delimiters
		"It's buggy, isn't it",
		"don't buy this, it crashes",
		`The tags are 'bugs' I'd say`,
		"[]",
		"[ , ]",
	} {
		_, err := ParseLabels(raw)
		require.ErrorIs(t, err, ErrUnparsable, "raw=%q", raw)
	}
}

func TestNormalizeSynonyms(t *testing.T) {
	m := testMap()
	for _, raw := range []string{
		`["UI"]`,
		`["user interface"]`,
		`["ui design"]`,
		`["User   Interface"]`,
	} {
		tags, err := Normalize(raw, m)
		require.NoError(t, err)
		require.Equal(t, []string{"ui"}, tags, "raw=%q", raw)
	}
}

func TestNormalizePassthrough(t *testing.T) {
	tags, err := Normalize(`["interface"]`, testMap())
	require.NoError(t, err)
	require.Equal(t, []string{"interface"}, tags)
}

func TestNormalizeDedupesAndSorts(t *testing.T) {
	tags, err := Normalize(`["bugs", "Bug", "crash", "UI"]`, testMap())
	require.NoError(t, err)
	require.Equal(t, []string{"bug", "crash", "ui"}, tags)
}

func TestNormalizeIdempotent(t *testing.T) {
	m := testMap()
	first, err := Normalize(`["UI", "bugs", "crash"]`, m)
	require.NoError(t, err)

	rendered := ""
	for i, tag := range first {
		if i > 0 {
			rendered += ", "
		}
		rendered += fmt.Sprintf("%q", tag)
	}
	second, err := Normalize("["+rendered+"]", m)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadSynonyms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.json5")
	err := os.WriteFile(path, []byte(`{
		// surface form -> canonical tag
		"UI": "ui",
		"User  Interface": "ui",
		"Bugs": "bug",
	}`), 0644)
	require.NoError(t, err)

	m, err := LoadSynonyms(path)
	require.NoError(t, err)
	require.Equal(t, "ui", m.Lookup("user interface"))
	require.Equal(t, "bug", m.Lookup(" BUGS "))
	require.Equal(t, "performance", m.Lookup("Performance"))
}

func TestSuggest(t *testing.T) {
	suggestions := Suggest("Interface", testMap(), 0.5)
	require.NotEmpty(t, suggestions)
	for i := 1; i < len(suggestions); i++ {
		require.GreaterOrEqual(t, suggestions[i-1].Similarity, suggestions[i].Similarity)
	}
}
