package data

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Recipe is a crafting recipe. Materials are consumed when the job is queued.
type Recipe struct {
	Name      string
	Materials []ItemAmount
	Yields    []ItemAmount
	Time      time.Duration
}

// RecipeTable holds all recipes indexed by name.
type RecipeTable struct {
	recipes map[string]*Recipe
}

// Get returns a recipe by name, or nil if not found.
func (t *RecipeTable) Get(name string) *Recipe {
	return t.recipes[name]
}

func (t *RecipeTable) Count() int { return len(t.recipes) }

// Names returns the recipe names, sorted.
func (t *RecipeTable) Names() []string {
	names := make([]string, 0, len(t.recipes))
	for n := range t.recipes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type recipeEntry struct {
	Name      string       `yaml:"name"`
	TimeMs    int          `yaml:"time_ms"`
	Materials []ItemAmount `yaml:"materials"`
	Yields    []ItemAmount `yaml:"yields"`
}

type recipeListFile struct {
	Recipes []recipeEntry `yaml:"recipes"`
}

func ParseRecipeTable(raw []byte) (*RecipeTable, error) {
	var f recipeListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	t := &RecipeTable{recipes: make(map[string]*Recipe, len(f.Recipes))}
	for _, e := range f.Recipes {
		if e.Name == "" {
			return nil, fmt.Errorf("recipe with empty name")
		}
		if _, dup := t.recipes[e.Name]; dup {
			return nil, fmt.Errorf("recipe %s defined twice", e.Name)
		}
		if e.TimeMs <= 0 {
			return nil, fmt.Errorf("recipe %s: time_ms must be positive", e.Name)
		}
		if len(e.Yields) == 0 {
			return nil, fmt.Errorf("recipe %s: no yields", e.Name)
		}
		if err := validAmounts(e.Materials); err != nil {
			return nil, fmt.Errorf("recipe %s materials: %w", e.Name, err)
		}
		if err := validAmounts(e.Yields); err != nil {
			return nil, fmt.Errorf("recipe %s yields: %w", e.Name, err)
		}
		t.recipes[e.Name] = &Recipe{
			Name:      e.Name,
			Materials: e.Materials,
			Yields:    e.Yields,
			Time:      time.Duration(e.TimeMs) * time.Millisecond,
		}
	}
	return t, nil
}
