package tagnorm

import (
	"slices"

	"github.com/antzucaro/matchr"
	"steamlens/lib/textutil"
)

type Suggestion struct {
	Canonical  string
	Similarity float64
}

// Suggest ranks the map's canonical tags by Jaro-Winkler similarity to
// an unmapped tag, keeping those at or above threshold. It is advisory
// output for whoever maintains the synonym config; suggestions are
// never applied automatically.
func Suggest(tag string, m SynonymMap, threshold float64) []Suggestion {
	canon := textutil.Canon(tag)

	seen := map[string]struct{}{}
	var result []Suggestion
	for _, canonical := range m {
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}

		similarity := matchr.JaroWinkler(canon, canonical, false)
		if similarity >= threshold {
			result = append(result, Suggestion{
				Canonical:  canonical,
				Similarity: similarity,
			})
		}
	}

	slices.SortFunc(result, func(a, b Suggestion) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		if a.Canonical < b.Canonical {
			return -1
		}
		if a.Canonical > b.Canonical {
			return 1
		}
		return 0
	})
	return result
}
