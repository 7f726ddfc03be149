package data

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceTable lists the gatherable resource types and the inventory keys a
// fresh character starts with.
type ResourceTable struct {
	types    []string
	known    map[string]bool
	starting []string
}

func (t *ResourceTable) IsResource(name string) bool { return t.known[name] }

func (t *ResourceTable) Types() []string { return t.types }

// StartingInventory returns the keys present at zero on a fresh character.
func (t *ResourceTable) StartingInventory() []string { return t.starting }

type resourceFile struct {
	Resources         []string `yaml:"resources"`
	StartingInventory []string `yaml:"starting_inventory"`
}

func ParseResourceTable(raw []byte) (*ResourceTable, error) {
	var f resourceFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse resources: %w", err)
	}
	if len(f.Resources) == 0 {
		return nil, fmt.Errorf("no resource types defined")
	}
	t := &ResourceTable{
		types:    f.Resources,
		known:    make(map[string]bool, len(f.Resources)),
		starting: f.StartingInventory,
	}
	for _, r := range f.Resources {
		if r == "" {
			return nil, fmt.Errorf("empty resource type")
		}
		t.known[r] = true
	}
	return t, nil
}
