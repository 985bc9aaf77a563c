package project

import (
	"math"
	"sort"
)

// languageComplexity is a deliberately subjective weighting used only for
// portfolio presentation: systems and functional languages rank higher,
// markup and shell lower. Unlisted languages get a mid weight.
var languageComplexity = map[string]float64{
	"Rust":       9.5,
	"C":          8.5,
	"C++":        8.0,
	"Haskell":    9.0,
	"Scala":      8.5,
	"Go":         8.0,
	"Julia":      8.5,
	"R":          7.5,
	"TypeScript": 7.5,
	"Kotlin":     7.5,
	"Swift":      7.0,
	"Python":     6.5,
	"Ruby":       6.0,
	"JavaScript": 5.5,
	"Erlang":     9.0,
	"Clojure":    8.5,
	"Elixir":     8.0,
	"Elm":        7.5,
	"Crystal":    7.0,
	"Nim":        7.0,
	"Unknown":    3.0,
	"HTML":       3.0,
	"CSS":        3.0,
	"Shell":      4.0,
}

const defaultComplexity = 5.0

// DefaultTopLanguages is how many ranked languages the projects payload
// carries.
const DefaultTopLanguages = 3

// unknownLanguage buckets repos without a detected primary language. It is
// counted in the raw tallies but never ranked.
const unknownLanguage = "Unknown"

// RankedLanguage is one entry of the top-languages summary.
type RankedLanguage struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// CountLanguages tallies eligible repositories per primary language.
// Repos without a language land in the Unknown bucket.
func CountLanguages(repos []Repository) map[string]int {
	counts := make(map[string]int)
	for _, r := range repos {
		if !Eligible(r) {
			continue
		}
		lang := r.Language
		if lang == "" {
			lang = unknownLanguage
		}
		counts[lang]++
	}
	return counts
}

// TopLanguages ranks languages by complexity*0.6 + sqrt(count/total)*10*0.4
// and returns the topN as (language, repo count) pairs. The Unknown bucket
// contributes to the total but is excluded from the ranking.
func TopLanguages(repos []Repository, topN int) []RankedLanguage {
	counts := CountLanguages(repos)

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil
	}

	type scored struct {
		lang  string
		count int
		score float64
	}
	ranked := make([]scored, 0, len(counts))
	for lang, count := range counts {
		if lang == unknownLanguage {
			continue
		}
		complexity, ok := languageComplexity[lang]
		if !ok {
			complexity = defaultComplexity
		}
		usage := math.Sqrt(float64(count)/float64(total)) * 10
		ranked = append(ranked, scored{
			lang:  lang,
			count: count,
			score: complexity*0.6 + usage*0.4,
		})
	}

	// Ties break on name so the ranking is stable across map iteration order.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].lang < ranked[j].lang
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]RankedLanguage, len(ranked))
	for i, s := range ranked {
		out[i] = RankedLanguage{Language: s.lang, Count: s.count}
	}
	return out
}
