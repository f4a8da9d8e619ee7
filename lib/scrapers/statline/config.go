package statline

import (
	_ "embed"

	"prospectlink/lib/tablegrid"

	"github.com/titanous/json5"
)

// Config pins the performance source's table shape. The column ranges
// are empirical, observed from one live layout: the career table
// concatenates the regular season and postseason sections around a
// separator column. Splitting fails loudly when the ranges drift.
type Config struct {
	WrapLocator    string `json:"wrap_locator"`
	TableLocator   string `json:"table_locator"`
	ResultsLocator string `json:"results_locator"`
	// header label of the merge-down season column
	GroupColumn string `json:"group_column"`
	// logical section boundaries by physical column index
	Ranges []tablegrid.ColumnRange `json:"ranges"`

	SeasonColumn string `json:"season_column"`
	TeamColumn   string `json:"team_column"`
	LeagueColumn string `json:"league_column"`
}

//go:embed statline.json5
var defaultConfigFile []byte

func DefaultConfig() (Config, error) {
	var cfg Config
	err := json5.Unmarshal(defaultConfigFile, &cfg)
	return cfg, err
}
