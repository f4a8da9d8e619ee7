// Package roster extracts an athlete's biographical profile from a
// roster-source page that has already been fetched and parsed.
// Retrieval is a collaborator concern; everything here is a pure
// transform over the document, safe to call concurrently for
// different athletes.
package roster

import (
	"context"
	"errors"
	"net/url"
	"time"

	"prospectlink/lib/htmlutil"
	"prospectlink/lib/sourceid"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Field is one label/value pair from the vitals block, in source order.
type Field struct {
	Label string
	Value string
}

// Draft is the decomposed draft disposition of an athlete.
type Draft struct {
	Year  int
	Round int
	Pick  int
	Team  string
}

// Profile is the normalized biographical record for one athlete,
// keyed by the identifier derived from the page address.
type Profile struct {
	ID     string
	Name   string
	Fields []Field

	BirthDate time.Time
	BirthYear int
	HeightCM  float64
	WeightKG  float64
	Position  string
	Shoots    string
	Draft     *Draft
}

// Scrape extracts and normalizes the athlete profile on a roster page.
// Any structural or coercion failure aborts the athlete: a partially
// populated profile is never returned.
func Scrape(ctx context.Context, doc *goquery.Document, pageURL *url.URL, cfg Config) (Profile, error) {
	ctx, span := tracer.Start(ctx, "roster:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageURL.String()))

	id, err := sourceid.FromURL(pageURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}
	span.SetAttributes(attribute.String("athlete", id))

	container, err := htmlutil.SelectOne(doc.Selection, cfg.ProfileLocator)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}

	heading, err := htmlutil.SelectOne(container, cfg.NameLocator)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}
	name := htmlutil.CleanText(heading.Text())

	vitals, err := htmlutil.SelectOne(container, cfg.VitalsLocator)
	if errors.Is(err, htmlutil.ErrNotFound) {
		// some deployments ship the vitals block commented out to
		// defer rendering, re-enter extraction on the payload
		fragment, ferr := htmlutil.CommentFragment(container)
		if ferr == nil {
			vitals, err = htmlutil.SelectOne(fragment.Selection, cfg.VitalsLocator)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}

	tokens, err := splitFieldBlock(vitals.Text(), cfg.Denylist, cfg.Sentinel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}

	profile := Profile{ID: id, Name: name}
	for i := 0; i < len(tokens); i += 2 {
		profile.Fields = append(profile.Fields, Field{
			Label: tokens[i],
			Value: tokens[i+1],
		})
	}

	err = deriveTyped(ctx, &profile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}

	return profile, nil
}
