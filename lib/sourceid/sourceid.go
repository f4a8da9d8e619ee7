// Package sourceid derives durable, source-scoped athlete identifiers
// from the canonical address of the athlete's page. A locator-derived
// identifier is reusable across independent extraction runs: the same
// page always yields the same identifier, so profile and season tables
// stay joinable without any coordinated counter.
package sourceid

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

// ErrNotDerivable is returned when the locator does not contain the
// expected athlete token shape.
var ErrNotDerivable = errors.New("identifier not derivable from locator")

// athlete pages address a numeric id, usually followed by a name slug,
// e.g. /player/38703/nils-hoglander or /athletes/927
var athletePath = regexp.MustCompile(`(?i)/(?:player|athlete|prospect)s?/(\d+)(?:/([a-z0-9][a-z0-9-]*))?`)

// FromURL derives the athlete identifier from a page address.
func FromURL(u *url.URL) (string, error) {
	return FromLocator(u.Path)
}

// FromLocator derives the athlete identifier from a locator path.
// Deriving twice from the same locator yields the same identifier.
func FromLocator(locator string) (string, error) {
	groups := athletePath.FindStringSubmatch(locator)
	if groups == nil {
		return "", fmt.Errorf("%w: %q", ErrNotDerivable, locator)
	}
	if groups[2] != "" {
		return groups[1] + "-" + groups[2], nil
	}
	return groups[1], nil
}
