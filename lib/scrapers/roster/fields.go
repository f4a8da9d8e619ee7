package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"prospectlink/lib/textutil"
)

var (
	// ErrMalformedFieldBlock means the vitals block did not reduce to
	// an even number of tokens, so labels and values cannot pair up.
	ErrMalformedFieldBlock = errors.New("field block does not pair up")
	// ErrUnparseableMeasurement means a compound measurement carried
	// no numeric metric component.
	ErrUnparseableMeasurement = errors.New("unparseable measurement")
	// ErrDecompositionUnderflow means a draft clause produced fewer
	// components than the four declared fields.
	ErrDecompositionUnderflow = errors.New("draft clause decomposition underflow")
)

// splitFieldBlock reduces raw newline-delimited label/value text to an
// ordered token sequence: trimmed, empties dropped, denylisted
// boilerplate dropped, and truncated at the sentinel token.
func splitFieldBlock(raw string, denylist []string, sentinel string) ([]string, error) {
	normalizedSentinel := textutil.NormalizeName(sentinel)

	var tokens []string
	for _, line := range strings.Split(raw, "\n") {
		tok := strings.TrimSpace(line)
		if tok == "" {
			continue
		}
		if sentinel != "" && textutil.NormalizeName(tok) == normalizedSentinel {
			break
		}
		if textutil.MatchName(tok, denylist) {
			continue
		}
		tokens = append(tokens, tok)
	}

	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: %d tokens remain", ErrMalformedFieldBlock, len(tokens))
	}
	return tokens, nil
}

// parseMeasurement takes a compound imperial/metric value such as
// `6'1"/185 cm` or `185 cm/6'1"` and returns the metric number with
// its unit suffix stripped. Only the metric side is retained; the
// canonical unit after normalization is metric.
func parseMeasurement(value string) (float64, error) {
	for _, part := range strings.Split(value, "/") {
		part = strings.TrimSpace(part)

		var unit string
		switch {
		case strings.HasSuffix(part, "cm"):
			unit = "cm"
		case strings.HasSuffix(part, "kg"):
			unit = "kg"
		default:
			continue
		}

		digits := strings.TrimSpace(strings.TrimSuffix(part, unit))
		n, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseableMeasurement, value)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: no metric component in %q", ErrUnparseableMeasurement, value)
}

// parseDraftClause decomposes a verbose draft disposition such as
// "2015 round 2 #36 overall by Buffalo Sabres" into year, round, pick
// and acquiring team. Connector words are dropped and the team absorbs
// every remaining word, so multi-word organization names survive.
func parseDraftClause(value string) (Draft, error) {
	var parts []string
	for _, tok := range strings.Fields(value) {
		tok = strings.TrimPrefix(tok, "#")
		switch strings.ToLower(tok) {
		case "round", "pick", "overall", "by", "":
			continue
		}
		parts = append(parts, tok)
	}

	if len(parts) < 4 {
		return Draft{}, fmt.Errorf(
			"%w: %q yields %d of 4 components",
			ErrDecompositionUnderflow, value, len(parts),
		)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Draft{}, fmt.Errorf("draft year %q: %w", parts[0], err)
	}
	round, err := strconv.Atoi(parts[1])
	if err != nil {
		return Draft{}, fmt.Errorf("draft round %q: %w", parts[1], err)
	}
	pick, err := strconv.Atoi(parts[2])
	if err != nil {
		return Draft{}, fmt.Errorf("draft pick %q: %w", parts[2], err)
	}

	return Draft{
		Year:  year,
		Round: round,
		Pick:  pick,
		Team:  strings.Join(parts[3:], " "),
	}, nil
}

var birthDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
}

func parseBirthDate(value string) (time.Time, bool) {
	for _, layout := range birthDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// deriveTyped coerces the well-known fields into typed values. Unit
// and draft coercion failures abort the profile; an unparseable birth
// date only degrades linking, so it is logged and skipped.
func deriveTyped(ctx context.Context, p *Profile) error {
	for _, f := range p.Fields {
		switch textutil.NormalizeName(f.Label) {
		case "height":
			v, err := parseMeasurement(f.Value)
			if err != nil {
				return err
			}
			p.HeightCM = v
		case "weight":
			v, err := parseMeasurement(f.Value)
			if err != nil {
				return err
			}
			p.WeightKG = v
		case "date of birth", "born":
			t, ok := parseBirthDate(f.Value)
			if !ok {
				slog.WarnContext(ctx, "unparseable birth date", "athlete", p.ID, "value", f.Value)
				continue
			}
			p.BirthDate = t
			p.BirthYear = t.Year()
		case "position":
			p.Position = f.Value
		case "shoots":
			p.Shoots = f.Value
		case "drafted", "nhl draft":
			if textutil.NormalizeName(f.Value) == "undrafted" {
				continue
			}
			d, err := parseDraftClause(f.Value)
			if err != nil {
				return err
			}
			p.Draft = &d
		}
	}
	return nil
}
