package render

import (
	"regexp"
	"sort"
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// Language level ranks. Native tops the CEFR scale; an unparseable level
// ranks 0 and loses to any recognized one.
const (
	rankNative = 7
	rankC2     = 6
	rankC1     = 5
	rankB2     = 4
	rankB1     = 3
	rankA2     = 2
	rankA1     = 1
)

var (
	reCEFR          = regexp.MustCompile(`\b([abc])([12])\b`)
	reParenthetical = regexp.MustCompile(`\([^)]*\)`)

	nativeMarkers = []string{"natif", "native", "maternelle", "maternel", "bilingue"}
)

// levelRank parses a free-form level string into a comparable rank.
func levelRank(niveau string) int {
	c := textutil.Comparable(niveau)
	if c == "" {
		return 0
	}
	for _, marker := range nativeMarkers {
		if strings.Contains(c, marker) {
			return rankNative
		}
	}
	if m := reCEFR.FindStringSubmatch(c); m != nil {
		base := map[string]int{"a": 0, "b": 2, "c": 4}[m[1]]
		offset := 1
		if m[2] == "2" {
			offset = 2
		}
		return base + offset
	}
	return 0
}

// Fixed keys for the two locales extraction mixes freely.
const (
	keyFrancais = "francais"
	keyAnglais  = "anglais"
)

// baseLanguageKey folds a display name to its base language: parenthetical
// qualifiers stripped ("Anglais (Reading)" → "anglais"), accents and case
// folded, English/French spellings canonicalized.
func baseLanguageKey(nom string) string {
	stripped := reParenthetical.ReplaceAllString(nom, " ")
	key := textutil.Comparable(stripped)
	switch key {
	case "english", "anglais":
		return keyAnglais
	case "french", "francais":
		return keyFrancais
	}
	return key
}

// consolidateLanguages keeps exactly one row per base language: the entry
// with the highest rank, ties broken by the longer level string for display
// richness. Result order: French first, English second, then the rest
// alphabetically by display name.
func consolidateLanguages(langues []types.Langue) []types.LangueCV {
	type entry struct {
		cv   types.LangueCV
		rank int
	}
	byBase := make(map[string]entry)
	for _, l := range langues {
		nom := strings.TrimSpace(l.Nom)
		key := baseLanguageKey(nom)
		if key == "" {
			continue
		}
		candidate := entry{
			cv:   types.LangueCV{Nom: RepairText(nom), Niveau: RepairText(l.Niveau)},
			rank: levelRank(l.Niveau),
		}
		best, seen := byBase[key]
		if !seen || candidate.rank > best.rank ||
			(candidate.rank == best.rank && len(candidate.cv.Niveau) > len(best.cv.Niveau)) {
			byBase[key] = candidate
		}
	}

	keys := make([]string, 0, len(byBase))
	for k := range byBase {
		if k != keyFrancais && k != keyAnglais {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return byBase[keys[i]].cv.Nom < byBase[keys[j]].cv.Nom
	})

	out := make([]types.LangueCV, 0, len(byBase))
	if e, ok := byBase[keyFrancais]; ok {
		out = append(out, e.cv)
	}
	if e, ok := byBase[keyAnglais]; ok {
		out = append(out, e.cv)
	}
	for _, k := range keys {
		out = append(out, byBase[k].cv)
	}
	return out
}
