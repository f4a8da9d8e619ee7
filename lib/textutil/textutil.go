package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	punctuationRegex = regexp.MustCompile(`['’.\-]+`)
)

var accentFold = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName folds a display name for cross-source comparison: case
// fold, strip diacritics, and collapse punctuation variance to single
// spaces. The fold is lossy on purpose: a genuinely hyphenated surname
// and a hyphen used as a separator normalize to the same form.
func NormalizeName(name string) string {
	folded, _, err := transform.String(accentFold, name)
	if err == nil {
		name = folded
	}
	name = strings.ToLower(name)
	name = punctuationRegex.ReplaceAllString(name, " ")
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// MatchName reports whether the normalized form of name contains any of
// the given matchers. Matchers are expected pre-normalized.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
