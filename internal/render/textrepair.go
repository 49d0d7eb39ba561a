package render

import (
	"regexp"
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
)

// Upstream extraction frequently loses word boundaries ("projetEnsuite",
// "etde"). RepairText is a fixed, ordered pipeline of deterministic
// substitutions; the order is part of the contract, so the same
// pathological input always repairs to the same bytes.

var (
	// 1. Space between a lowercase/accented letter and a following capital.
	reCamelRun = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	// 2. Space after sentence punctuation glued to a letter.
	rePunctGlue = regexp.MustCompile(`([.!?;:])(\p{L})`)
	// 3. Spaces around parentheses glued to letters.
	reOpenParen  = regexp.MustCompile(`(\p{L})\(`)
	reCloseParen = regexp.MustCompile(`\)(\p{L})`)
	// 5. Space a "+" from a following digit, and digits from "ans".
	rePlusDigit = regexp.MustCompile(`\+(\d)`)
	reDigitAns  = regexp.MustCompile(`(\d)(ans)\b`)
)

// wordFusions are known French word-boundary collapses, replaced
// case-insensitively on word boundaries.
var wordFusions = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\betde\b`), "et de"},
	{regexp.MustCompile(`(?i)\betdes\b`), "et des"},
	{regexp.MustCompile(`(?i)\betla\b`), "et la"},
	{regexp.MustCompile(`(?i)\betles\b`), "et les"},
	{regexp.MustCompile(`(?i)\bdela\b`), "de la"},
	{regexp.MustCompile(`(?i)\benplace\b`), "en place"},
	{regexp.MustCompile(`(?i)\bmiseen\b`), "mise en"},
	{regexp.MustCompile(`(?i)\bausein\b`), "au sein"},
	{regexp.MustCompile(`(?i)\bpourles\b`), "pour les"},
	{regexp.MustCompile(`(?i)\bsurles\b`), "sur les"},
	{regexp.MustCompile(`(?i)\bdansle\b`), "dans le"},
	{regexp.MustCompile(`(?i)\bdansles\b`), "dans les"},
	{regexp.MustCompile(`(?i)\bavecles\b`), "avec les"},
	{regexp.MustCompile(`(?i)\bavecune\b`), "avec une"},
}

// RepairText applies the repair pipeline to one text value. Best-effort,
// lossy-tolerant; placeholders resolve to the empty string.
func RepairText(s string) string {
	if textutil.IsPlaceholder(s) {
		return ""
	}

	s = reCamelRun.ReplaceAllString(s, "$1 $2")
	s = rePunctGlue.ReplaceAllString(s, "$1 $2")
	s = reOpenParen.ReplaceAllString(s, "$1 (")
	s = reCloseParen.ReplaceAllString(s, ") $1")
	for _, f := range wordFusions {
		s = f.re.ReplaceAllString(s, f.repl)
	}
	s = rePlusDigit.ReplaceAllString(s, "+ $1")
	s = reDigitAns.ReplaceAllString(s, "$1 $2")
	s = textutil.CollapseWhitespace(s)
	return strings.TrimSpace(s)
}
