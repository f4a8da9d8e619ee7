// Package statline extracts season-scoped performance records from a
// performance-source page that has already been fetched and parsed.
// The source renders one physical career table holding two logical
// sections; reconciliation recovers them as disjoint histories.
package statline

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"prospectlink/lib/htmlutil"
	"prospectlink/lib/sourceid"
	"prospectlink/lib/tablegrid"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SeasonRow is one season-scoped performance record. Stats holds the
// numeric columns keyed by their header label (GP, G, A, TP).
type SeasonRow struct {
	AthleteID string
	Season    string
	Team      string
	League    string
	Stats     map[string]int
}

// History is an athlete's full season history, partitioned into the
// regular season and postseason sections of the career table.
type History struct {
	AthleteID  string
	Regular    []SeasonRow
	Postseason []SeasonRow
}

// Scrape extracts the career table from a performance-source page and
// reconciles it into regular season and postseason histories, with the
// athlete identifier attached to every row.
func Scrape(ctx context.Context, doc *goquery.Document, pageURL *url.URL, cfg Config) (History, error) {
	ctx, span := tracer.Start(ctx, "statline:Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageURL.String()))

	id, err := sourceid.FromURL(pageURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return History{}, err
	}
	span.SetAttributes(attribute.String("athlete", id))

	wrap, err := htmlutil.SelectOne(doc.Selection, cfg.WrapLocator)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return History{}, err
	}

	table, err := htmlutil.SelectOne(wrap, cfg.TableLocator)
	if errors.Is(err, htmlutil.ErrNotFound) {
		// the table is often served inside a comment node to defer
		// rendering, re-enter extraction on the payload
		fragment, ferr := htmlutil.CommentFragment(wrap)
		if ferr == nil {
			table, err = htmlutil.SelectOne(fragment.Selection, cfg.TableLocator)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return History{}, err
	}

	logical, err := tablegrid.Split(htmlutil.TableGrid(table), cfg.Ranges)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return History{}, err
	}

	history := History{AthleteID: id}
	for i := range logical {
		tbl := &logical[i]

		// postseason sections are sparse: an athlete with no playoff
		// games that year leaves the whole row blank, including the
		// season cell, so blank rows go before the group fill
		dropBlankRows(tbl, cfg)

		err := tablegrid.ForwardFill(tbl, cfg.GroupColumn)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return History{}, err
		}

		rows := seasonRows(ctx, *tbl, id, cfg)
		switch tbl.Name {
		case "regular":
			history.Regular = rows
		case "postseason":
			history.Postseason = rows
		default:
			slog.WarnContext(ctx, "unrecognized logical table", "name", tbl.Name)
		}
	}

	return history, nil
}

func dropBlankRows(tbl *tablegrid.Logical, cfg Config) {
	team := tbl.Column(cfg.TeamColumn)
	league := tbl.Column(cfg.LeagueColumn)

	kept := tbl.Rows[:0]
	for _, row := range tbl.Rows {
		if cell(row, team) == "" && cell(row, league) == "" {
			continue
		}
		kept = append(kept, row)
	}
	tbl.Rows = kept
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func seasonRows(ctx context.Context, tbl tablegrid.Logical, athleteID string, cfg Config) []SeasonRow {
	season := tbl.Column(cfg.SeasonColumn)
	team := tbl.Column(cfg.TeamColumn)
	league := tbl.Column(cfg.LeagueColumn)

	var rows []SeasonRow
	for _, raw := range tbl.Rows {
		row := SeasonRow{
			AthleteID: athleteID,
			Season:    cell(raw, season),
			Team:      cell(raw, team),
			League:    cell(raw, league),
			Stats:     map[string]int{},
		}

		for idx, label := range tbl.Header {
			if idx == season || idx == team || idx == league {
				continue
			}
			value := cell(raw, idx)
			if value == "" || value == "-" {
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				slog.WarnContext(
					ctx, "non-numeric stat cell",
					"athlete", athleteID, "column", label, "value", value,
				)
				continue
			}
			row.Stats[label] = n
		}

		rows = append(rows, row)
	}
	return rows
}
