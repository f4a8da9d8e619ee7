// Package prospects composes the per-athlete pipeline: extract the
// roster profile, resolve it against the performance source's
// candidate set, and extract the linked season history. Every athlete
// is independent, so callers may run this concurrently per athlete;
// nothing here holds shared mutable state.
package prospects

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"prospectlink/lib/configutil"
	"prospectlink/lib/scrapers/roster"
	"prospectlink/lib/scrapers/statline"
	"prospectlink/services/linker"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// Page is an already-retrieved, parsed document plus the address it
// was served from. Fetching, retries and caching are the caller's
// concern.
type Page struct {
	Doc *goquery.Document
	URL *url.URL
}

type Config struct {
	Roster   roster.Config   `json:"roster"`
	Statline statline.Config `json:"statline"`
}

// DefaultConfig assembles the embedded per-source shape defaults.
func DefaultConfig() (Config, error) {
	rosterCfg, err := roster.DefaultConfig()
	if err != nil {
		return Config{}, err
	}
	statlineCfg, err := statline.DefaultConfig()
	if err != nil {
		return Config{}, err
	}
	return Config{Roster: rosterCfg, Statline: statlineCfg}, nil
}

// LoadConfig reads source-shape overrides from the named json5 file,
// falling back to the embedded defaults for anything unset, or
// entirely when no such file exists.
func LoadConfig(name string) (Config, error) {
	defaults, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}
	override, err := configutil.ReadConfig[Config](name)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return Config{}, err
	}
	return configutil.MergeDefaults(defaults, override)
}

// LinkResult is the linker outcome plus, when unresolved, scored
// suggestions for a human reviewer.
type LinkResult struct {
	Outcome     linker.Outcome
	Suggestions []linker.ImplicitLink
}

// Athlete is the assembled per-athlete record handed off to the
// persistence/reporting collaborator.
type Athlete struct {
	Profile roster.Profile
	History statline.History
	Link    LinkResult
}

func ScrapeProfile(ctx context.Context, page Page, cfg Config) (roster.Profile, error) {
	return roster.Scrape(ctx, page.Doc, page.URL, cfg.Roster)
}

func ScrapeHistory(ctx context.Context, page Page, cfg Config) (statline.History, error) {
	return statline.Scrape(ctx, page.Doc, page.URL, cfg.Statline)
}

// ResolveAthlete links a roster profile against the performance
// source's candidate set. Unresolved outcomes come back with
// suggestions attached; they are per-athlete results, never errors.
func ResolveAthlete(ctx context.Context, profile roster.Profile, candidates []statline.Candidate) LinkResult {
	converted := make([]linker.Candidate, len(candidates))
	for i, c := range candidates {
		converted[i] = linker.Candidate(c)
	}

	outcome := linker.Resolve(ctx, linker.Query{
		Name:      profile.Name,
		BirthYear: profile.BirthYear,
	}, converted)

	result := LinkResult{Outcome: outcome}
	if !outcome.Resolved() {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		result.Suggestions = linker.SuggestLinks([]string{profile.Name}, names)
		slog.InfoContext(
			ctx, "athlete unresolved",
			"athlete", profile.ID,
			"reason", outcome.Reason,
			"suggestions", len(result.Suggestions),
		)
	}
	return result
}

// Assemble runs the whole per-athlete pipeline. Extraction failures on
// either source abort the athlete; an unresolved link returns the
// profile with the unresolved outcome recorded and no history.
func Assemble(
	ctx context.Context,
	rosterPage Page,
	statsPage Page,
	candidates []statline.Candidate,
	cfg Config,
) (Athlete, error) {
	ctx, span := tracer.Start(ctx, "prospects:Assemble")
	defer span.End()

	profile, err := ScrapeProfile(ctx, rosterPage, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Athlete{}, err
	}

	athlete := Athlete{Profile: profile}
	athlete.Link = ResolveAthlete(ctx, profile, candidates)
	if !athlete.Link.Outcome.Resolved() {
		return athlete, nil
	}

	history, err := ScrapeHistory(ctx, statsPage, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Athlete{}, err
	}
	if history.AthleteID != athlete.Link.Outcome.Key {
		slog.WarnContext(
			ctx, "stats page does not match the resolved link",
			"resolved", athlete.Link.Outcome.Key,
			"page", history.AthleteID,
		)
	}
	athlete.History = history

	return athlete, nil
}
