// Package inventory provides the classroom inventory model: item keys,
// usable/broken counts, and the rooms that hold them.
package inventory

import (
	"errors"
	"fmt"
)

// ItemKey identifies a tracked item type. The set of keys is closed; use
// ParseItemKey to convert untrusted text.
type ItemKey string

// Secondary-only keys.
const (
	Chairs ItemKey = "chairs"
	Desks  ItemKey = "desks"
)

// Primary-only keys.
const (
	ChildChairs          ItemKey = "childChairs"
	ChildDesks           ItemKey = "childDesks"
	Blackboards          ItemKey = "blackboards"
	Sinks                ItemKey = "sinks"
	WhiteCubicles        ItemKey = "whiteCubicles"
	LearningAidCupboards ItemKey = "learningAidCupboards"
	Bookshelves          ItemKey = "bookshelves"
	WorkTables           ItemKey = "workTables"
	Mirrors              ItemKey = "mirrors"
	Stage                ItemKey = "stage"
)

// Keys shared by primary and secondary rooms.
const (
	TeacherDesks         ItemKey = "teacherDesks"
	TeacherChairs        ItemKey = "teacherChairs"
	Whiteboards          ItemKey = "whiteboards"
	FirstAidKits         ItemKey = "firstAidKits"
	Cupboards            ItemKey = "cupboards"
	Fans                 ItemKey = "fans"
	PlugTops             ItemKey = "plugTops"
	WaterFilters         ItemKey = "waterFilters"
	DisplayBoards        ItemKey = "displayBoards"
	LightbulbsAndHolders ItemKey = "lightbulbsAndHolders"
)

// Computers is only relevant to computer labs but, like every key, is
// present in every Inventory.
const Computers ItemKey = "computers"

// ErrUnknownItemKey is returned when text does not name a known ItemKey.
var ErrUnknownItemKey = errors.New("unknown item key")

// AllKeys is the full key superset in canonical order. Inventory slots are
// laid out in this order.
var AllKeys = []ItemKey{
	Chairs, Desks,
	ChildChairs, ChildDesks, Blackboards, Sinks, WhiteCubicles, LearningAidCupboards,
	Bookshelves, WorkTables, Mirrors, Stage,
	TeacherDesks, TeacherChairs, Whiteboards, FirstAidKits, Cupboards, Fans,
	PlugTops, WaterFilters, DisplayBoards, LightbulbsAndHolders,
	Computers,
}

// SecondaryKeys is the ordered key subset used by grade 6 and above.
var SecondaryKeys = []ItemKey{
	Chairs, Desks, TeacherDesks, TeacherChairs, Whiteboards, FirstAidKits,
	Cupboards, Fans, PlugTops, WaterFilters, DisplayBoards, LightbulbsAndHolders,
}

// PrimaryKeys is the ordered key subset used by grades 1 through 5.
var PrimaryKeys = []ItemKey{
	ChildChairs, ChildDesks, TeacherDesks, TeacherChairs, Whiteboards, Blackboards,
	Cupboards, Fans, PlugTops, WaterFilters, Sinks, FirstAidKits,
	LightbulbsAndHolders, WhiteCubicles, LearningAidCupboards, Bookshelves,
	WorkTables, DisplayBoards, Mirrors, Stage,
}

// LabKeys is SecondaryKeys followed by Computers.
var LabKeys = append(append([]ItemKey{}, SecondaryKeys...), Computers)

// keyIndex maps each key to its slot in an Inventory.
var keyIndex = func() map[ItemKey]int {
	m := make(map[ItemKey]int, len(AllKeys))
	for i, k := range AllKeys {
		m[k] = i
	}
	return m
}()

// defaultLabels holds the display label for each key.
var defaultLabels = map[ItemKey]string{
	Chairs:               "Chairs",
	Desks:                "Desks",
	ChildChairs:          "Child Chairs",
	ChildDesks:           "Child Desks",
	Blackboards:          "Blackboard",
	Sinks:                "Sinks with Taps",
	WhiteCubicles:        "White Cubicles",
	LearningAidCupboards: "Learning Aid Cupboards",
	Bookshelves:          "Bookshelves",
	WorkTables:           "Work Tables",
	Mirrors:              "Mirrors",
	Stage:                "Stage",
	TeacherDesks:         "Teacher Desks",
	TeacherChairs:        "Teacher Chairs",
	Whiteboards:          "Whiteboard",
	FirstAidKits:         "First Aid Kits",
	Cupboards:            "Cupboards",
	Fans:                 "Fans",
	PlugTops:             "Plug Tops",
	WaterFilters:         "Water Filters",
	DisplayBoards:        "Display Boards",
	LightbulbsAndHolders: "Lightbulbs & Holders",
	Computers:            "Computers",
}

// Valid reports whether k is a member of the closed key set.
func (k ItemKey) Valid() bool {
	_, ok := keyIndex[k]
	return ok
}

// Label returns the default display label for k, or the raw key when k is unknown.
func (k ItemKey) Label() string {
	if l, ok := defaultLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseItemKey converts s to an ItemKey.
//
// Postcondition: Returns a valid key, or an error wrapping ErrUnknownItemKey.
func ParseItemKey(s string) (ItemKey, error) {
	k := ItemKey(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownItemKey, s)
	}
	return k, nil
}

// ParseKeys converts each entry of names to an ItemKey, rejecting unknown or
// repeated keys.
//
// Postcondition: Returns keys in input order, or the first error encountered.
func ParseKeys(names []string) ([]ItemKey, error) {
	seen := make(map[ItemKey]bool, len(names))
	keys := make([]ItemKey, 0, len(names))
	for _, n := range names {
		k, err := ParseItemKey(n)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate item key %q", n)
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys, nil
}

// Labels returns the default label for every key in keys, with overrides
// taking precedence.
func Labels(keys []ItemKey, overrides map[ItemKey]string) map[ItemKey]string {
	out := make(map[ItemKey]string, len(keys))
	for _, k := range keys {
		if l, ok := overrides[k]; ok && l != "" {
			out[k] = l
			continue
		}
		out[k] = k.Label()
	}
	return out
}
