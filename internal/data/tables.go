package data

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed yaml/*.yaml
var embedded embed.FS

// Tables bundles every static catalog the game reads.
type Tables struct {
	Worlds     *WorldTable
	Recipes    *RecipeTable
	Resources  *ResourceTable
	Abilities  *AbilityTable
	Alignments *AlignmentTable
	Memories   *MemoryTable
	BaseCosts  *BaseCostTable
}

// ItemAmount is a quantity of a named inventory entry.
type ItemAmount struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

// LoadAll loads every catalog from dir, or from the embedded copies when dir
// is empty.
func LoadAll(dir string) (*Tables, error) {
	var src fs.FS
	if dir == "" {
		sub, err := fs.Sub(embedded, "yaml")
		if err != nil {
			return nil, err
		}
		src = sub
	} else {
		src = os.DirFS(dir)
	}

	var (
		t   Tables
		err error
	)
	if t.Worlds, err = loadWith(src, "worlds.yaml", ParseWorldTable); err != nil {
		return nil, err
	}
	if t.Recipes, err = loadWith(src, "recipes.yaml", ParseRecipeTable); err != nil {
		return nil, err
	}
	if t.Resources, err = loadWith(src, "resources.yaml", ParseResourceTable); err != nil {
		return nil, err
	}
	if t.Abilities, err = loadWith(src, "abilities.yaml", ParseAbilityTable); err != nil {
		return nil, err
	}
	if t.Alignments, err = loadWith(src, "alignments.yaml", ParseAlignmentTable); err != nil {
		return nil, err
	}
	if t.Memories, err = loadWith(src, "memories.yaml", ParseMemoryTable); err != nil {
		return nil, err
	}
	if t.BaseCosts, err = loadWith(src, "base_costs.yaml", ParseBaseCostTable); err != nil {
		return nil, err
	}
	return &t, nil
}

// MustLoadEmbedded returns the embedded catalogs and panics if they are
// broken. Meant for tests and tools.
func MustLoadEmbedded() *Tables {
	t, err := LoadAll("")
	if err != nil {
		panic(err)
	}
	return t
}

func loadWith[T any](src fs.FS, name string, parse func([]byte) (*T, error)) (*T, error) {
	raw, err := fs.ReadFile(src, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	out, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func validAmounts(list []ItemAmount) error {
	seen := make(map[string]bool, len(list))
	for _, a := range list {
		if a.Item == "" {
			return fmt.Errorf("empty item name")
		}
		if a.Count <= 0 {
			return fmt.Errorf("item %s: count must be positive, got %d", a.Item, a.Count)
		}
		if seen[a.Item] {
			return fmt.Errorf("item %s listed twice", a.Item)
		}
		seen[a.Item] = true
	}
	return nil
}
