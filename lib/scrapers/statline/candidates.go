package statline

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"prospectlink/lib/htmlutil"
	"prospectlink/lib/sourceid"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// Candidate is one row of a performance-source name search, the
// material the cross-source linker chooses from.
type Candidate struct {
	Key       string
	Name      string
	BirthYear int
}

// ScrapeCandidates extracts the candidate set from a search results
// page. Rows whose profile link carries no derivable identifier are
// skipped rather than failing the whole set.
func ScrapeCandidates(ctx context.Context, doc *goquery.Document, cfg Config) ([]Candidate, error) {
	ctx, span := tracer.Start(ctx, "statline:ScrapeCandidates")
	defer span.End()

	results, err := htmlutil.SelectOne(doc.Selection, cfg.ResultsLocator)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var candidates []Candidate
	results.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			// header row
			return
		}

		anchors := htmlutil.GetAnchors(ctx, row.Find("a"))
		if len(anchors) == 0 {
			slog.WarnContext(ctx, "search result row without profile link")
			return
		}

		href, err := url.Parse(anchors[0].Href)
		if err != nil {
			slog.WarnContext(ctx, "unparseable profile link", "href", anchors[0].Href)
			return
		}
		key, err := sourceid.FromURL(href)
		if err != nil {
			slog.WarnContext(ctx, "skipping candidate", "href", anchors[0].Href, "err", err)
			return
		}

		born, err := strconv.Atoi(htmlutil.CleanText(cells.Eq(1).Text()))
		if err != nil {
			slog.WarnContext(ctx, "candidate without birth year", "key", key)
		}

		candidates = append(candidates, Candidate{
			Key:       key,
			Name:      anchors[0].Name,
			BirthYear: born,
		})
	})

	return candidates, nil
}
