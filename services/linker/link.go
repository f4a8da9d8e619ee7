package linker

import (
	"prospectlink/lib/textutil"

	"github.com/antzucaro/matchr"
)

// ImplicitLink is a scored pairing between a roster name and a
// performance-source name. Correlation 1 means the normalized forms
// are equal; anything lower is a similarity guess.
type ImplicitLink struct {
	Left        string
	Right       string
	Correlation float64
}

// suggestions below this correlation are noise
const suggestionThreshold = 0.75

// CreateImplicitLinks pairs every left name with its best-matching
// right name. Names whose normalized forms are equal pair first with
// correlation 1; the remainder pair greedily by Jaro-Winkler
// similarity over the normalized forms. Each name is used at most once.
func CreateImplicitLinks(leftList, rightList []string) []ImplicitLink {
	swapped := false
	if len(rightList) < len(leftList) {
		leftList, rightList = rightList, leftList
		swapped = true
	}

	normalized := make(map[string]string, len(leftList)+len(rightList))
	for _, name := range leftList {
		normalized[name] = textutil.NormalizeName(name)
	}
	for _, name := range rightList {
		normalized[name] = textutil.NormalizeName(name)
	}

	var result []ImplicitLink
	matchedLeft := make(map[string]struct{})
	matchedRight := make(map[string]struct{})

	for _, left := range leftList {
		for _, right := range rightList {
			_, isMatchedRight := matchedRight[right]
			if isMatchedRight {
				continue
			}
			if normalized[left] == normalized[right] {
				link := ImplicitLink{
					Left:        left,
					Right:       right,
					Correlation: 1,
				}
				if swapped {
					link.Left, link.Right = link.Right, link.Left
				}

				result = append(result, link)
				matchedLeft[left] = struct{}{}
				matchedRight[right] = struct{}{}
				break
			}
		}
	}

	for _, left := range leftList {
		_, isMatchedLeft := matchedLeft[left]
		if isMatchedLeft {
			continue
		}

		var mostSimilarity float64
		var mostSimilarRight string

		for _, right := range rightList {
			_, isMatchedRight := matchedRight[right]
			if isMatchedRight {
				continue
			}

			similarity := matchr.JaroWinkler(normalized[left], normalized[right], false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilarRight = right
			}
		}

		if mostSimilarity > 0 {
			link := ImplicitLink{
				Left:        left,
				Right:       mostSimilarRight,
				Correlation: mostSimilarity,
			}
			if swapped {
				link.Left, link.Right = link.Right, link.Left
			}

			result = append(result, link)
			matchedLeft[left] = struct{}{}
			matchedRight[mostSimilarRight] = struct{}{}
		}
	}

	return result
}

// SuggestLinks returns the implicit links worth surfacing to a human
// reviewer: similar enough to be plausible, but not exact (exact
// matches resolve on their own through Resolve).
func SuggestLinks(leftList, rightList []string) []ImplicitLink {
	var suggestions []ImplicitLink
	for _, link := range CreateImplicitLinks(leftList, rightList) {
		if link.Correlation < suggestionThreshold || link.Correlation == 1 {
			continue
		}
		suggestions = append(suggestions, link)
	}
	return suggestions
}
