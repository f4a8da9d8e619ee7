package roster

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"prospectlink/lib/htmlutil"
	"prospectlink/lib/sourceid"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const vitalsBlock = `
	Date of Birth
	Dec 20, 2000
	Height
	6'1"/185 cm
	Weight
	196 lbs/89 kg
	Position
	LW
	Shoots
	Left
	Drafted
	2019 round 2 #40 overall by Vancouver Canucks
	Statistics provided by SportsFeed
	Highlights
	2019 SHL Goal of the Year
`

const renderedPage = `
<html><body>
<div id="player-profile">
	<h1 class="athlete-name">Nils Höglander</h1>
	<div class="vitals">` + vitalsBlock + `</div>
</div>
</body></html>
`

// identical content, but the vitals block arrives inside a comment
// node for deferred client-side rendering
const deferredPage = `
<html><body>
<div id="player-profile">
	<h1 class="athlete-name">Nils Höglander</h1>
	<!--
	<div class="vitals">` + vitalsBlock + `</div>
	-->
</div>
</body></html>
`

func scrapePage(t *testing.T, markup string) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	pageURL, err := url.Parse("https://roster.example.com/player/38703/nils-hoglander")
	require.NoError(t, err)
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	return Scrape(context.Background(), doc, pageURL, cfg)
}

func requireExpectedProfile(t *testing.T, p Profile) {
	require.Equal(t, "38703-nils-hoglander", p.ID)
	require.Equal(t, "Nils Höglander", p.Name)

	// six pairs survive the denylist and sentinel, in source order
	labels := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		labels[i] = f.Label
	}
	require.Equal(t, []string{
		"Date of Birth", "Height", "Weight", "Position", "Shoots", "Drafted",
	}, labels)

	require.Equal(t, 2000, p.BirthYear)
	require.Equal(t, float64(185), p.HeightCM)
	require.Equal(t, float64(89), p.WeightKG)
	require.Equal(t, "LW", p.Position)
	require.Equal(t, "Left", p.Shoots)
	require.NotNil(t, p.Draft)
	require.Equal(t, Draft{Year: 2019, Round: 2, Pick: 40, Team: "Vancouver Canucks"}, *p.Draft)
}

func TestScrape(t *testing.T) {
	p, err := scrapePage(t, renderedPage)
	require.NoError(t, err)
	requireExpectedProfile(t, p)
}

func TestScrapeCommentEmbedded(t *testing.T) {
	p, err := scrapePage(t, deferredPage)
	require.NoError(t, err)
	requireExpectedProfile(t, p)
}

func TestScrapeMissingProfile(t *testing.T) {
	_, err := scrapePage(t, `<html><body><div id="other"></div></body></html>`)
	require.ErrorIs(t, err, htmlutil.ErrNotFound)
	require.Contains(t, err.Error(), "#player-profile")
}

func TestScrapeAmbiguousProfile(t *testing.T) {
	markup := strings.Replace(
		renderedPage,
		`<div class="vitals">`,
		`<div class="vitals">x</div><div class="vitals">`,
		1,
	)
	_, err := scrapePage(t, markup)
	require.ErrorIs(t, err, htmlutil.ErrAmbiguousMatch)
}

func TestScrapeUnderivableIdentifier(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedPage))
	require.NoError(t, err)
	pageURL, err := url.Parse("https://roster.example.com/news/today")
	require.NoError(t, err)
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	_, err = Scrape(context.Background(), doc, pageURL, cfg)
	require.ErrorIs(t, err, sourceid.ErrNotDerivable)
}
