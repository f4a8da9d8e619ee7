// Package linker resolves which performance-source record, if any,
// refers to the same individual as a roster-source profile. No shared
// identifier exists between the two sources, so resolution works off
// imprecise signals: normalized display names plus a disambiguating
// birth year. An unresolved outcome is a legitimate per-athlete result,
// not an error.
package linker

import (
	"context"

	"prospectlink/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Method records how a link was established.
type Method string

const (
	// MethodExact means exactly one candidate shared the normalized name.
	MethodExact Method = "exact"
	// MethodBirthYear means several candidates shared the name and the
	// birth year narrowed them to one.
	MethodBirthYear Method = "birth_year"
)

// Reason records why no link was established.
type Reason string

const (
	// ReasonNoCandidate means no candidate shared the normalized name.
	ReasonNoCandidate Reason = "no_candidate"
	// ReasonUnresolvedAmbiguity means several candidates shared the
	// name and disambiguation could not narrow them to one.
	ReasonUnresolvedAmbiguity Reason = "unresolved_ambiguity"
)

// Query is the roster side of a resolution: the athlete's display name
// plus the auxiliary attribute used to break name collisions. A zero
// BirthYear means the attribute is unavailable.
type Query struct {
	Name      string
	BirthYear int
}

// Candidate is one performance-source record under consideration.
type Candidate struct {
	Key       string
	Name      string
	BirthYear int
}

// Outcome relates a roster profile to at most one performance-source
// key. Either Method or Reason is set, never both.
type Outcome struct {
	Key    string
	Method Method
	Reason Reason
}

func (o Outcome) Resolved() bool {
	return o.Reason == ""
}

// Resolve applies the layered matching policy, first success wins:
// exact normalized-name match accepted when unique, then birth-year
// disambiguation accepted when it narrows to exactly one candidate.
func Resolve(ctx context.Context, query Query, candidates []Candidate) Outcome {
	ctx, span := tracer.Start(ctx, "linker:Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("name", query.Name))

	want := textutil.NormalizeName(query.Name)

	var matched []Candidate
	for _, c := range candidates {
		if textutil.NormalizeName(c.Name) == want {
			matched = append(matched, c)
		}
	}

	switch len(matched) {
	case 0:
		span.AddEvent("unresolved", trace.WithAttributes(
			attribute.String("reason", string(ReasonNoCandidate)),
		))
		return Outcome{Reason: ReasonNoCandidate}
	case 1:
		return Outcome{Key: matched[0].Key, Method: MethodExact}
	}

	if query.BirthYear != 0 {
		var narrowed []Candidate
		for _, c := range matched {
			if c.BirthYear == query.BirthYear {
				narrowed = append(narrowed, c)
			}
		}
		if len(narrowed) == 1 {
			return Outcome{Key: narrowed[0].Key, Method: MethodBirthYear}
		}
	}

	span.AddEvent("unresolved", trace.WithAttributes(
		attribute.String("reason", string(ReasonUnresolvedAmbiguity)),
		attribute.Int("collisions", len(matched)),
	))
	return Outcome{Reason: ReasonUnresolvedAmbiguity}
}
