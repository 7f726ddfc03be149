package data

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// EffectKind names what an ability does when used.
type EffectKind string

const (
	EffectNone         EffectKind = "none"
	EffectSpeedBoost   EffectKind = "speed_boost"    // multiply movement speed for Duration
	EffectHealOverTime EffectKind = "heal_over_time" // grant Amount XP every Interval until Budget is spent
)

// AbilityEffect holds the parameters of an ability's effect. Which fields are
// meaningful depends on Kind.
type AbilityEffect struct {
	Kind       EffectKind
	Multiplier float64
	Duration   time.Duration
	Amount     int
	Interval   time.Duration
	Budget     int
}

// AbilityInfo is an elemental ability template.
type AbilityInfo struct {
	Name        string
	MinLevel    int
	Description string
	Cooldown    time.Duration
	Effect      AbilityEffect
}

// AbilityTable holds all abilities indexed by name, plus catalog order.
type AbilityTable struct {
	byName map[string]*AbilityInfo
	order  []*AbilityInfo
}

func (t *AbilityTable) Get(name string) *AbilityInfo { return t.byName[name] }

func (t *AbilityTable) All() []*AbilityInfo { return t.order }

func (t *AbilityTable) Count() int { return len(t.order) }

type abilityEffectEntry struct {
	Kind       string  `yaml:"kind"`
	Multiplier float64 `yaml:"multiplier"`
	DurationMs int     `yaml:"duration_ms"`
	Amount     int     `yaml:"amount"`
	IntervalMs int     `yaml:"interval_ms"`
	Budget     int     `yaml:"budget"`
}

type abilityEntry struct {
	Name        string             `yaml:"name"`
	MinLevel    int                `yaml:"min_level"`
	Description string             `yaml:"description"`
	CooldownMs  int                `yaml:"cooldown_ms"`
	Effect      abilityEffectEntry `yaml:"effect"`
}

type abilityListFile struct {
	Abilities []abilityEntry `yaml:"abilities"`
}

func ParseAbilityTable(raw []byte) (*AbilityTable, error) {
	var f abilityListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse abilities: %w", err)
	}
	t := &AbilityTable{byName: make(map[string]*AbilityInfo, len(f.Abilities))}
	for _, e := range f.Abilities {
		if e.Name == "" {
			return nil, fmt.Errorf("ability with empty name")
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("ability %s defined twice", e.Name)
		}
		eff := AbilityEffect{
			Kind:       EffectKind(e.Effect.Kind),
			Multiplier: e.Effect.Multiplier,
			Duration:   time.Duration(e.Effect.DurationMs) * time.Millisecond,
			Amount:     e.Effect.Amount,
			Interval:   time.Duration(e.Effect.IntervalMs) * time.Millisecond,
			Budget:     e.Effect.Budget,
		}
		if eff.Kind == "" {
			eff.Kind = EffectNone
		}
		if err := validEffect(eff); err != nil {
			return nil, fmt.Errorf("ability %s: %w", e.Name, err)
		}
		a := &AbilityInfo{
			Name:        e.Name,
			MinLevel:    e.MinLevel,
			Description: e.Description,
			Cooldown:    time.Duration(e.CooldownMs) * time.Millisecond,
			Effect:      eff,
		}
		t.byName[a.Name] = a
		t.order = append(t.order, a)
	}
	return t, nil
}

func validEffect(e AbilityEffect) error {
	switch e.Kind {
	case EffectNone:
	case EffectSpeedBoost:
		if e.Multiplier <= 0 || e.Duration <= 0 {
			return fmt.Errorf("speed_boost needs positive multiplier and duration_ms")
		}
	case EffectHealOverTime:
		if e.Amount <= 0 || e.Interval <= 0 || e.Budget <= 0 {
			return fmt.Errorf("heal_over_time needs positive amount, interval_ms and budget")
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}
