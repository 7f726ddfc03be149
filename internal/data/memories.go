package data

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MemoryInfo is a narrative memory definition.
type MemoryInfo struct {
	ID        string
	Narrative string
	Size      float64
}

type MemoryTable struct {
	list []*MemoryInfo
	byID map[string]*MemoryInfo
}

func (t *MemoryTable) Get(id string) *MemoryInfo { return t.byID[id] }

func (t *MemoryTable) All() []*MemoryInfo { return t.list }

func (t *MemoryTable) Count() int { return len(t.list) }

type memoryEntry struct {
	ID        string  `yaml:"id"`
	Narrative string  `yaml:"narrative"`
	Size      float64 `yaml:"size"`
}

type memoryListFile struct {
	Memories []memoryEntry `yaml:"memories"`
}

func ParseMemoryTable(raw []byte) (*MemoryTable, error) {
	var f memoryListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse memories: %w", err)
	}
	t := &MemoryTable{byID: make(map[string]*MemoryInfo, len(f.Memories))}
	for _, e := range f.Memories {
		if e.ID == "" {
			return nil, fmt.Errorf("memory with empty id")
		}
		if _, dup := t.byID[e.ID]; dup {
			return nil, fmt.Errorf("memory %s defined twice", e.ID)
		}
		if e.Size <= 0 {
			return nil, fmt.Errorf("memory %s: size must be positive", e.ID)
		}
		m := &MemoryInfo{ID: e.ID, Narrative: e.Narrative, Size: e.Size}
		t.byID[m.ID] = m
		t.list = append(t.list, m)
	}
	return t, nil
}
