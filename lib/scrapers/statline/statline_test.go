package statline

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"prospectlink/lib/htmlutil"
	"prospectlink/lib/tablegrid"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const careerTable = `
<table class="career-stats">
	<tr>
		<th>S</th><th>Team</th><th>Lg</th><th>GP</th><th>G</th><th>A</th><th>TP</th>
		<th>|</th>
		<th>S</th><th>Team</th><th>Lg</th><th>GP</th><th>G</th><th>A</th><th>TP</th>
	</tr>
	<tr>
		<td>2018-19</td><td>Rögle BK</td><td>SHL</td><td>50</td><td>14</td><td>9</td><td>23</td>
		<td></td>
		<td>2018-19</td><td>Rögle BK</td><td>SHL</td><td>5</td><td>1</td><td>0</td><td>1</td>
	</tr>
	<tr>
		<td></td><td>Rögle J20</td><td>J20</td><td>12</td><td>8</td><td>7</td><td>15</td>
		<td></td>
		<td></td><td></td><td></td><td></td><td></td><td></td><td></td>
	</tr>
	<tr>
		<td>2019-20</td><td>Rögle BK</td><td>SHL</td><td>45</td><td>11</td><td>10</td><td>21</td>
		<td></td>
		<td>2019-20</td><td>Rögle BK</td><td>SHL</td><td>8</td><td>2</td><td>3</td><td>5</td>
	</tr>
</table>
`

const renderedStatsPage = `
<html><body>
<div id="career-stats-wrap">` + careerTable + `</div>
</body></html>
`

const deferredStatsPage = `
<html><body>
<div id="career-stats-wrap">
	<!--
	` + careerTable + `
	-->
</div>
</body></html>
`

func scrapeStats(t *testing.T, markup string) (History, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	pageURL, err := url.Parse("https://stats.example.com/player/38703/nils-hoglander")
	require.NoError(t, err)
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	return Scrape(context.Background(), doc, pageURL, cfg)
}

func requireExpectedHistory(t *testing.T, h History) {
	require.Equal(t, "38703-nils-hoglander", h.AthleteID)

	require.Len(t, h.Regular, 3)
	require.Len(t, h.Postseason, 2, "the all-blank playoff row is dropped")

	// blank season inherits the nearest non-blank label above
	require.Equal(t, "2018-19", h.Regular[1].Season)
	require.Equal(t, "Rögle J20", h.Regular[1].Team)

	for _, row := range append(append([]SeasonRow{}, h.Regular...), h.Postseason...) {
		require.Equal(t, h.AthleteID, row.AthleteID)
		require.NotEmpty(t, row.Season, "no season label is blank after reconciliation")
	}

	require.Empty(t, cmp.Diff(SeasonRow{
		AthleteID: "38703-nils-hoglander",
		Season:    "2018-19",
		Team:      "Rögle BK",
		League:    "SHL",
		Stats:     map[string]int{"GP": 50, "G": 14, "A": 9, "TP": 23},
	}, h.Regular[0]))
	require.Empty(t, cmp.Diff(SeasonRow{
		AthleteID: "38703-nils-hoglander",
		Season:    "2019-20",
		Team:      "Rögle BK",
		League:    "SHL",
		Stats:     map[string]int{"GP": 8, "G": 2, "A": 3, "TP": 5},
	}, h.Postseason[1]))
}

func TestScrape(t *testing.T) {
	h, err := scrapeStats(t, renderedStatsPage)
	require.NoError(t, err)
	requireExpectedHistory(t, h)
}

func TestScrapeCommentEmbedded(t *testing.T) {
	h, err := scrapeStats(t, deferredStatsPage)
	require.NoError(t, err)
	requireExpectedHistory(t, h)
}

func TestScrapeMissingTable(t *testing.T) {
	_, err := scrapeStats(t, `<html><body><div id="career-stats-wrap"></div></body></html>`)
	require.ErrorIs(t, err, htmlutil.ErrNotFound)
}

func TestScrapeDriftedRanges(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedStatsPage))
	require.NoError(t, err)
	pageURL, err := url.Parse("https://stats.example.com/player/38703/nils-hoglander")
	require.NoError(t, err)
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	cfg.Ranges = []tablegrid.ColumnRange{
		{Name: "regular", Columns: []int{0, 1, 2, 3, 4, 5, 6, 8}},
	}

	_, err = Scrape(context.Background(), doc, pageURL, cfg)
	require.ErrorIs(t, err, tablegrid.ErrDuplicateColumnAfterSplit)
}

const searchPage = `
<html><body>
<table class="search-results">
	<tr><th>Player</th><th>Born</th></tr>
	<tr><td><a href="/player/38703/nils-hoglander">Nils Höglander</a></td><td>2000</td></tr>
	<tr><td><a href="/player/44120/lucas-forsell">Lucas Forsell</a></td><td>2003</td></tr>
	<tr><td><a href="/about">broken row</a></td><td>n/a</td></tr>
</table>
</body></html>
`

func TestScrapeCandidates(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchPage))
	require.NoError(t, err)
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	candidates, err := ScrapeCandidates(context.Background(), doc, cfg)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff([]Candidate{
		{Key: "38703-nils-hoglander", Name: "Nils Höglander", BirthYear: 2000},
		{Key: "44120-lucas-forsell", Name: "Lucas Forsell", BirthYear: 2003},
	}, candidates))
}
