package htmlutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func docFromString(t *testing.T, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestSelectOne(t *testing.T) {
	doc := docFromString(t, `
		<div id="profile"><span class="name">A</span></div>
		<div class="row">1</div>
		<div class="row">2</div>
	`)

	sel, err := SelectOne(doc.Selection, "#profile .name")
	require.NoError(t, err)
	require.Equal(t, "A", sel.Text())

	_, err = SelectOne(doc.Selection, "#missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "#missing")

	_, err = SelectOne(doc.Selection, "div.row")
	require.ErrorIs(t, err, ErrAmbiguousMatch)
}

func TestCommentFragment(t *testing.T) {
	rendered := `
		<div id="wrap">
			<table class="stats"><tr><td>42</td></tr></table>
		</div>
	`
	deferred := `
		<div id="wrap">
			<!--
			<table class="stats"><tr><td>42</td></tr></table>
			-->
		</div>
	`

	direct := docFromString(t, rendered)
	table, err := SelectOne(direct.Selection, "table.stats")
	require.NoError(t, err)
	want := TableGrid(table)

	wrap, err := SelectOne(docFromString(t, deferred).Selection, "#wrap")
	require.NoError(t, err)

	// the table should not be visible before re-parsing the comment
	_, err = SelectOne(wrap, "table.stats")
	require.ErrorIs(t, err, ErrNotFound)

	fragment, err := CommentFragment(wrap)
	require.NoError(t, err)
	table, err = SelectOne(fragment.Selection, "table.stats")
	require.NoError(t, err)

	diff := cmp.Diff(want, TableGrid(table))
	require.Empty(t, diff)
}

func TestCommentFragmentMissing(t *testing.T) {
	doc := docFromString(t, `<div id="wrap"><p>nothing here</p></div>`)
	wrap, err := SelectOne(doc.Selection, "#wrap")
	require.NoError(t, err)

	_, err = CommentFragment(wrap)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestTableGrid(t *testing.T) {
	doc := docFromString(t, `
		<table>
			<tr><th>S</th><th>Team</th></tr>
			<tr><td>2019-20</td><td>  Växjö   Lakers </td></tr>
			<tr><td></td><td>Rochester</td></tr>
		</table>
	`)
	table, err := SelectOne(doc.Selection, "table")
	require.NoError(t, err)

	diff := cmp.Diff([][]string{
		{"S", "Team"},
		{"2019-20", "Växjö Lakers"},
		{"", "Rochester"},
	}, TableGrid(table))
	require.Empty(t, diff)
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b", CleanText("  a \n\t b "))
}
