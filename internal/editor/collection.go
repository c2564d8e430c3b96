// Package editor provides the mutation surface over an ordered list of rooms.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
)

// Collection is an ordered sequence of rooms. Display order is insertion
// order. A Collection has a single owner and is not safe for concurrent use.
type Collection struct {
	rooms    []inventory.Room
	nextID   IDGenerator
	onChange func(Change)
}

// Op names the mutation carried by a Change.
type Op string

// Mutation kinds reported to listeners.
const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

// Change describes one applied mutation.
type Change struct {
	Op     Op
	RoomID string
	Key    inventory.ItemKey
	Field  inventory.Field
	Value  int
}

// Option configures a Collection.
type Option func(*Collection)

// WithIDGenerator overrides the default SequentialIDs generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Collection) {
		if gen != nil {
			c.nextID = gen
		}
	}
}

// WithListener registers fn to be called after every applied mutation.
func WithListener(fn func(Change)) Option {
	return func(c *Collection) {
		c.onChange = fn
	}
}

// New returns an empty Collection.
//
// Postcondition: Len() == 0.
func New(opts ...Option) *Collection {
	c := &Collection{nextID: SequentialIDs()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AddRoom appends a room built from defaults under a freshly generated ID.
// Names are trimmed; an empty or whitespace-only name is rejected.
//
// Postcondition: Returns (room, true) with the room appended last, or
// (zero Room, false) with the collection unchanged.
func (c *Collection) AddRoom(name string, kind inventory.Kind, defaults map[inventory.ItemKey]inventory.ItemState) (inventory.Room, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return inventory.Room{}, false
	}
	if kind == "" {
		kind = inventory.KindClassroom
	}
	room := inventory.Room{
		ID:    c.nextID(),
		Name:  name,
		Kind:  kind,
		Items: inventory.Build(defaults),
	}
	c.rooms = append(c.rooms, room)
	c.notify(Change{Op: OpAdd, RoomID: room.ID})
	return room, true
}

// RemoveRoom deletes the room with the given ID.
//
// Postcondition: Returns true if a room was removed; absent IDs are a no-op.
func (c *Collection) RemoveRoom(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.rooms = append(c.rooms[:i:i], c.rooms[i+1:]...)
	c.notify(Change{Op: OpRemove, RoomID: id})
	return true
}

// UpdateCell writes ParseCount(raw) into items[key][field] of the room with
// the given ID. Invalid or negative input is stored as 0.
//
// Precondition: key and field must be valid.
// Postcondition: Only that one cell changes; returns false and changes
// nothing when the ID, key or field is unknown.
func (c *Collection) UpdateCell(id string, key inventory.ItemKey, field inventory.Field, raw string) bool {
	i := c.indexOf(id)
	if i < 0 || !key.Valid() || !field.Valid() {
		return false
	}
	n := inventory.ParseCount(raw)
	c.rooms[i].Items = c.rooms[i].Items.Set(key, field, n)
	c.notify(Change{Op: OpUpdate, RoomID: id, Key: key, Field: field, Value: n})
	return true
}

// UpdateCellText is UpdateCell for text-named keys and fields.
//
// Postcondition: Returns an error wrapping inventory.ErrUnknownItemKey or
// inventory.ErrUnknownField for bad names, ErrRoomNotFound for unknown IDs.
func (c *Collection) UpdateCellText(id, key, field, raw string) error {
	k, err := inventory.ParseItemKey(key)
	if err != nil {
		return err
	}
	f, err := inventory.ParseField(field)
	if err != nil {
		return err
	}
	if !c.UpdateCell(id, k, f, raw) {
		return fmt.Errorf("%w: %q", ErrRoomNotFound, id)
	}
	return nil
}

// Rooms returns a copy of the rooms in display order.
func (c *Collection) Rooms() []inventory.Room {
	out := make([]inventory.Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Room returns the room with the given ID.
//
// Postcondition: Returns (room, true) if found, or (zero Room, false).
func (c *Collection) Room(id string) (inventory.Room, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return inventory.Room{}, false
	}
	return c.rooms[i], true
}

// Len returns the number of rooms.
func (c *Collection) Len() int {
	return len(c.rooms)
}

// Find resolves a user-supplied room reference: an exact ID first, then a
// 1-based position, then a case-insensitive name.
//
// Postcondition: Returns (room, true) on the first match, or (zero Room, false).
func (c *Collection) Find(ref string) (inventory.Room, bool) {
	ref = strings.TrimSpace(ref)
	if r, ok := c.Room(ref); ok {
		return r, true
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.rooms) {
		return c.rooms[n-1], true
	}
	for _, r := range c.rooms {
		if strings.EqualFold(r.Name, ref) {
			return r, true
		}
	}
	return inventory.Room{}, false
}

func (c *Collection) indexOf(id string) int {
	for i := range c.rooms {
		if c.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) notify(ch Change) {
	if c.onChange != nil {
		c.onChange(ch)
	}
}
