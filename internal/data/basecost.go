package data

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// BaseCost is the price of building the base up to Level.
type BaseCost struct {
	Level     int
	XP        int
	Materials []ItemAmount
}

// BaseCostTable is keyed by target level. Load guarantees levels 1..MaxLevel
// are all present, so every reachable upgrade has a price.
type BaseCostTable struct {
	byLevel map[int]*BaseCost
	max     int
}

// ForTarget returns the cost of reaching level, or nil above MaxLevel.
func (t *BaseCostTable) ForTarget(level int) *BaseCost {
	return t.byLevel[level]
}

func (t *BaseCostTable) MaxLevel() int { return t.max }

type baseCostEntry struct {
	Level     int          `yaml:"level"`
	XP        int          `yaml:"xp"`
	Materials []ItemAmount `yaml:"materials"`
}

type baseCostFile struct {
	BaseCosts []baseCostEntry `yaml:"base_costs"`
}

func ParseBaseCostTable(raw []byte) (*BaseCostTable, error) {
	var f baseCostFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse base costs: %w", err)
	}
	t := &BaseCostTable{byLevel: make(map[int]*BaseCost, len(f.BaseCosts))}
	levels := make([]int, 0, len(f.BaseCosts))
	for _, e := range f.BaseCosts {
		if _, dup := t.byLevel[e.Level]; dup {
			return nil, fmt.Errorf("base level %d defined twice", e.Level)
		}
		if e.XP < 0 {
			return nil, fmt.Errorf("base level %d: negative xp", e.Level)
		}
		if err := validAmounts(e.Materials); err != nil {
			return nil, fmt.Errorf("base level %d: %w", e.Level, err)
		}
		t.byLevel[e.Level] = &BaseCost{Level: e.Level, XP: e.XP, Materials: e.Materials}
		levels = append(levels, e.Level)
	}
	sort.Ints(levels)
	for i, lv := range levels {
		if lv != i+1 {
			return nil, fmt.Errorf("base levels must run 1..N without gaps, missing level %d", i+1)
		}
	}
	t.max = len(levels)
	return t, nil
}
