// Package totals derives per-key and grand usable/broken sums from rooms.
// Totals are a view: recompute them whenever the rooms change.
package totals

import "github.com/cory-johannsen/schoolstock/internal/inventory"

// KeyTotal is the summed state of one key across rooms.
type KeyTotal struct {
	Key   inventory.ItemKey
	State inventory.ItemState
}

// Totals holds per-key sums in the key order they were computed for.
type Totals struct {
	rows []KeyTotal
}

// Compute sums Usable and Broken independently, for each key in keys, across
// every room. Repeated keys are summed once.
//
// Postcondition: Result has one row per distinct key in keys, in input order;
// the result does not depend on the order of rooms.
func Compute(rooms []inventory.Room, keys []inventory.ItemKey) Totals {
	t := Totals{rows: make([]KeyTotal, 0, len(keys))}
	seen := make(map[inventory.ItemKey]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		var sum inventory.ItemState
		for _, r := range rooms {
			sum = sum.Add(r.Items.Get(k))
		}
		t.rows = append(t.rows, KeyTotal{Key: k, State: sum})
	}
	return t
}

// Rows returns the per-key totals in key order.
func (t Totals) Rows() []KeyTotal {
	out := make([]KeyTotal, len(t.rows))
	copy(out, t.rows)
	return out
}

// Get returns the total for k, or {0, 0} when k was not among the computed keys.
func (t Totals) Get(k inventory.ItemKey) inventory.ItemState {
	for _, r := range t.rows {
		if r.Key == k {
			return r.State
		}
	}
	return inventory.ItemState{}
}

// Map returns the totals keyed by item key.
func (t Totals) Map() map[inventory.ItemKey]inventory.ItemState {
	out := make(map[inventory.ItemKey]inventory.ItemState, len(t.rows))
	for _, r := range t.rows {
		out[r.Key] = r.State
	}
	return out
}

// Grand reduces the per-key totals to a single usable/broken pair.
func Grand(t Totals) inventory.ItemState {
	var g inventory.ItemState
	for _, r := range t.rows {
		g = g.Add(r.State)
	}
	return g
}

// Overall returns the number of tracked items, usable plus broken.
func (t Totals) Overall() int {
	return Grand(t).Total()
}
