package data

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// AlignmentInfo is a cosmic alignment template. A zero multiplier in the file
// means "no effect" and is stored as 1.
type AlignmentInfo struct {
	Name                string
	Duration            time.Duration
	Description         string
	SpawnRateMultiplier float64
	SpeedMultiplier     float64
}

// AlignmentTable is the alignment catalog plus the roll interval.
type AlignmentTable struct {
	CheckInterval time.Duration
	list          []*AlignmentInfo
}

func (t *AlignmentTable) All() []*AlignmentInfo { return t.list }

func (t *AlignmentTable) Count() int { return len(t.list) }

type alignmentEntry struct {
	Name                string  `yaml:"name"`
	DurationMs          int     `yaml:"duration_ms"`
	Description         string  `yaml:"description"`
	SpawnRateMultiplier float64 `yaml:"spawn_rate_multiplier"`
	SpeedMultiplier     float64 `yaml:"speed_multiplier"`
}

type alignmentListFile struct {
	CheckIntervalMs int              `yaml:"check_interval_ms"`
	Alignments      []alignmentEntry `yaml:"alignments"`
}

func ParseAlignmentTable(raw []byte) (*AlignmentTable, error) {
	var f alignmentListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse alignments: %w", err)
	}
	if f.CheckIntervalMs <= 0 {
		return nil, fmt.Errorf("check_interval_ms must be positive")
	}
	t := &AlignmentTable{CheckInterval: time.Duration(f.CheckIntervalMs) * time.Millisecond}
	for _, e := range f.Alignments {
		if e.Name == "" || e.DurationMs <= 0 {
			return nil, fmt.Errorf("alignment %q: needs a name and positive duration_ms", e.Name)
		}
		a := &AlignmentInfo{
			Name:                e.Name,
			Duration:            time.Duration(e.DurationMs) * time.Millisecond,
			Description:         e.Description,
			SpawnRateMultiplier: orOne(e.SpawnRateMultiplier),
			SpeedMultiplier:     orOne(e.SpeedMultiplier),
		}
		t.list = append(t.list, a)
	}
	return t, nil
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
