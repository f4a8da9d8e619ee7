package htmlutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("prospectlink.lib.htmlutil")

var (
	// ErrNotFound is returned when a locator matches no nodes.
	ErrNotFound = errors.New("locator matched no nodes")
	// ErrAmbiguousMatch is returned when a locator matches more than
	// one node but the caller expected exactly one.
	ErrAmbiguousMatch = errors.New("locator matched more than one node")
)

// SelectOne finds the single node matched by locator underneath sel.
// Zero matches fail with ErrNotFound, more than one with
// ErrAmbiguousMatch; both carry the locator so the caller can retry
// with an alternate locator or skip.
func SelectOne(sel *goquery.Selection, locator string) (*goquery.Selection, error) {
	found := sel.Find(locator)
	switch found.Length() {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, locator)
	case 1:
		return found, nil
	}
	return nil, fmt.Errorf(
		"%w: %q matched %d nodes",
		ErrAmbiguousMatch, locator, found.Length(),
	)
}

func commentPayload(node *html.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	if node.Type == html.CommentNode {
		return node.Data, true
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if data, ok := commentPayload(child); ok {
			return data, ok
		}
	}
	return "", false
}

// CommentFragment re-parses markup a source serves inside a comment
// node to defer client-side rendering. The first comment found
// underneath sel is parsed as a document fragment, which extraction
// can then re-enter with the usual selectors.
func CommentFragment(sel *goquery.Selection) (*goquery.Document, error) {
	for _, n := range sel.Nodes {
		data, ok := commentPayload(n)
		if !ok {
			continue
		}
		return goquery.NewDocumentFromReader(strings.NewReader(data))
	}
	return nil, fmt.Errorf("%w: no comment node beneath selection", ErrNotFound)
}

// GetText concatenates every text node underneath node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText strips non-printable runes and collapses inner whitespace,
// the way cell and anchor text should look after extraction.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// TableGrid flattens a <table> selection into row-major cell text,
// header row included. Cell text is cleaned but otherwise untouched;
// blank cells stay blank so downstream reconciliation can repair them.
func TableGrid(table *goquery.Selection) [][]string {
	var grid [][]string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, CleanText(cell.Text()))
		})
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	})
	return grid
}

type Anchor struct {
	Name string
	Href string
}

func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	ctx, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		link, err := url.Parse(href)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "got error while parsing url")
			continue
		}

		name := CleanText(GetText(n))
		linkStr := link.String()
		anchors = append(anchors, Anchor{
			Name: name,
			Href: linkStr,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("url", linkStr),
		))
	}

	return anchors
}
