package inventory

import "fmt"

// Inventory holds an ItemState for every key in AllKeys. It is a value type:
// assignment copies it, and every key is always present.
type Inventory struct {
	slots [keyCount]ItemState
}

const keyCount = 23

func init() {
	if len(AllKeys) != keyCount {
		panic(fmt.Sprintf("inventory: keyCount is %d but AllKeys has %d entries", keyCount, len(AllKeys)))
	}
}

// Build returns an Inventory in which each key takes its value from defaults
// when present, and {0, 0} otherwise. Negative supplied counts are clamped to
// zero; unknown keys in defaults are ignored.
//
// Postcondition: Every key in AllKeys maps to a non-negative ItemState.
func Build(defaults map[ItemKey]ItemState) Inventory {
	var inv Inventory
	for k, s := range defaults {
		if i, ok := keyIndex[k]; ok {
			inv.slots[i] = s.normalized()
		}
	}
	return inv
}

// Get returns the state stored for k. Unknown keys read as {0, 0}.
func (inv Inventory) Get(k ItemKey) ItemState {
	i, ok := keyIndex[k]
	if !ok {
		return ItemState{}
	}
	return inv.slots[i]
}

// Set returns a copy of inv with field f of key k set to n (clamped at zero).
//
// Precondition: k must be valid; unknown keys leave the copy unchanged.
func (inv Inventory) Set(k ItemKey, f Field, n int) Inventory {
	i, ok := keyIndex[k]
	if !ok {
		return inv
	}
	inv.slots[i] = inv.slots[i].With(f, n)
	return inv
}

// Map returns the inventory as a key → state map covering all keys.
func (inv Inventory) Map() map[ItemKey]ItemState {
	out := make(map[ItemKey]ItemState, keyCount)
	for i, k := range AllKeys {
		out[k] = inv.slots[i]
	}
	return out
}
