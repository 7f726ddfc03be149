package world

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Inventory maps item names to non-negative counts. Keys keep the order in
// which they were first added, which is also the display order.
type Inventory struct {
	keys   []string
	counts map[string]int
}

// NewInventory creates an inventory holding each key at zero.
func NewInventory(keys ...string) *Inventory {
	inv := &Inventory{counts: make(map[string]int, len(keys))}
	for _, k := range keys {
		inv.ensure(k)
	}
	return inv
}

func (inv *Inventory) ensure(name string) {
	if _, ok := inv.counts[name]; !ok {
		inv.keys = append(inv.keys, name)
		inv.counts[name] = 0
	}
}

// Count returns the stored amount of name, zero if absent.
func (inv *Inventory) Count(name string) int { return inv.counts[name] }

// Has reports whether at least n of name are stored.
func (inv *Inventory) Has(name string, n int) bool { return inv.counts[name] >= n }

// Add adds n (> 0) of name, creating the key if absent.
func (inv *Inventory) Add(name string, n int) {
	if n <= 0 {
		return
	}
	inv.ensure(name)
	inv.counts[name] += n
}

// Remove takes n of name. It refuses, and changes nothing, if fewer than n
// are stored.
func (inv *Inventory) Remove(name string, n int) bool {
	if n < 0 || inv.counts[name] < n {
		return false
	}
	inv.counts[name] -= n
	return true
}

// Keys returns item names in display order.
func (inv *Inventory) Keys() []string { return inv.keys }

// DisplayLines renders "Wood Plank: 3" style lines in display order.
func (inv *Inventory) DisplayLines() []string {
	title := cases.Title(language.English)
	lines := make([]string, 0, len(inv.keys))
	for _, k := range inv.keys {
		name := title.String(strings.ReplaceAll(k, "_", " "))
		lines = append(lines, fmt.Sprintf("%s: %d", name, inv.counts[k]))
	}
	return lines
}
