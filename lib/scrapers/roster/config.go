package roster

import (
	_ "embed"

	"github.com/titanous/json5"
)

// Config declares where the roster source keeps the profile block and
// which tokens around it are noise. The locators are observed from the
// live layout; deployments override them via json5 when the source
// drifts rather than patching code.
type Config struct {
	ProfileLocator string `json:"profile_locator"`
	VitalsLocator  string `json:"vitals_locator"`
	NameLocator    string `json:"name_locator"`
	// pre-normalized substrings whose tokens are dropped as boilerplate
	Denylist []string `json:"denylist"`
	// the field token at which the block is truncated; it and
	// everything after it is discarded
	Sentinel string `json:"sentinel"`
}

//go:embed roster.json5
var defaultConfigFile []byte

func DefaultConfig() (Config, error) {
	var cfg Config
	err := json5.Unmarshal(defaultConfigFile, &cfg)
	return cfg, err
}
