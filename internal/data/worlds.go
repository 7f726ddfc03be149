package data

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WorldInfo is one entry of the world catalog.
type WorldInfo struct {
	Index          int
	Name           string
	MinPlayerLevel int
	Background     [3]string // three background tones, darkest first
	Accent         string
}

// WorldTable is the immutable world catalog in progression order.
type WorldTable struct {
	worlds []*WorldInfo
}

// Get returns the world at index, or nil if out of range.
func (t *WorldTable) Get(index int) *WorldInfo {
	if index < 0 || index >= len(t.worlds) {
		return nil
	}
	return t.worlds[index]
}

func (t *WorldTable) Count() int { return len(t.worlds) }

func (t *WorldTable) All() []*WorldInfo { return t.worlds }

type worldEntry struct {
	Name           string   `yaml:"name"`
	MinPlayerLevel int      `yaml:"min_player_level"`
	Background     []string `yaml:"background"`
	Accent         string   `yaml:"accent"`
}

type worldListFile struct {
	Worlds []worldEntry `yaml:"worlds"`
}

// ParseWorldTable parses the world catalog and checks that unlock levels
// strictly increase along the list.
func ParseWorldTable(raw []byte) (*WorldTable, error) {
	var f worldListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse worlds: %w", err)
	}
	if len(f.Worlds) == 0 {
		return nil, fmt.Errorf("no worlds defined")
	}
	t := &WorldTable{worlds: make([]*WorldInfo, 0, len(f.Worlds))}
	for i, e := range f.Worlds {
		if e.Name == "" {
			return nil, fmt.Errorf("world %d: empty name", i)
		}
		if len(e.Background) != 3 {
			return nil, fmt.Errorf("world %s: want 3 background tones, got %d", e.Name, len(e.Background))
		}
		if i > 0 && e.MinPlayerLevel <= f.Worlds[i-1].MinPlayerLevel {
			return nil, fmt.Errorf("world %s: min_player_level %d must exceed %d of %s",
				e.Name, e.MinPlayerLevel, f.Worlds[i-1].MinPlayerLevel, f.Worlds[i-1].Name)
		}
		w := &WorldInfo{
			Index:          i,
			Name:           e.Name,
			MinPlayerLevel: e.MinPlayerLevel,
			Accent:         e.Accent,
		}
		copy(w.Background[:], e.Background)
		t.worlds = append(t.worlds, w)
	}
	return t, nil
}
