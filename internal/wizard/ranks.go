package wizard

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed ranks.yaml
var ranksYAML []byte

type RankOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// RankCatalog maps a supported platform to its selectable ranks.
type RankCatalog map[Platform][]RankOption

func ParseRankCatalog(b []byte) (RankCatalog, error) {
	var raw map[string][]RankOption
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	catalog := RankCatalog{}
	for name, options := range raw {
		p, err := ParsePlatform(name)
		if err != nil {
			return nil, fmt.Errorf("parse platform: %w", err)
		}
		catalog[p] = options
	}

	return catalog, nil
}

// DefaultRanks is the built-in catalog.
func DefaultRanks() RankCatalog {
	catalog, err := ParseRankCatalog(ranksYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rank catalog: %v", err))
	}
	return catalog
}

// Options returns the ranks for p; Other and unset platforms have none.
func (c RankCatalog) Options(p Platform) []RankOption {
	return c[p]
}

func (c RankCatalog) Contains(p Platform, rank string) bool {
	for _, o := range c[p] {
		if o.Value == rank {
			return true
		}
	}
	return false
}
