// Package book binds a catalog module to an editable room collection,
// exposing the derived totals used by reports and the console.
package book

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/catalog"
	"github.com/cory-johannsen/schoolstock/internal/editor"
	"github.com/cory-johannsen/schoolstock/internal/inventory"
	"github.com/cory-johannsen/schoolstock/internal/report"
	"github.com/cory-johannsen/schoolstock/internal/totals"
)

// Book is one module's working inventory for the current session.
type Book struct {
	module *catalog.Module
	rooms  *editor.Collection
	logger *zap.Logger
}

// New creates a Book seeded with the module's seed rooms.
//
// Precondition: m must be a validated module; logger must be non-nil.
// Postcondition: Rooms() holds one room per seed, in seed order.
func New(m *catalog.Module, ids editor.IDGenerator, logger *zap.Logger) *Book {
	b := &Book{module: m, logger: logger.With(zap.String("module", m.ID))}
	b.rooms = editor.New(editor.WithIDGenerator(ids), editor.WithListener(b.logChange))
	for _, s := range m.Seeds {
		b.rooms.AddRoom(s.Name, m.Kind, s.Items)
	}
	return b
}

// Module returns the module definition.
func (b *Book) Module() *catalog.Module {
	return b.module
}

// Rooms returns the editable room collection.
func (b *Book) Rooms() *editor.Collection {
	return b.rooms
}

// AddRoom adds an all-zero room of the module's kind.
//
// Postcondition: Returns (room, true), or false for a blank name.
func (b *Book) AddRoom(name string) (inventory.Room, bool) {
	return b.rooms.AddRoom(name, b.module.Kind, nil)
}

// Keys returns the module's ordered key subset.
func (b *Book) Keys() []inventory.ItemKey {
	return append([]inventory.ItemKey(nil), b.module.Keys...)
}

// Label returns the display label of k.
func (b *Book) Label(k inventory.ItemKey) string {
	if l, ok := b.module.Labels[k]; ok {
		return l
	}
	return k.Label()
}

// Labels returns the display label of every key in Keys.
func (b *Book) Labels() map[inventory.ItemKey]string {
	out := make(map[inventory.ItemKey]string, len(b.module.Keys))
	for _, k := range b.module.Keys {
		out[k] = b.Label(k)
	}
	return out
}

// Totals recomputes the per-key totals over the current rooms.
func (b *Book) Totals() totals.Totals {
	return totals.Compute(b.rooms.Rooms(), b.module.Keys)
}

// Grand recomputes the grand total over the current rooms.
func (b *Book) Grand() inventory.ItemState {
	return totals.Grand(b.Totals())
}

// Document builds the export document for the current rooms, headed by school.
//
// Postcondition: Returns report.ErrNoRooms when the book has no rooms.
func (b *Book) Document(school string) (report.Document, error) {
	return report.Build(report.Input{
		School:      school,
		Title:       b.module.Title,
		ReportTitle: b.module.ReportTitle,
		FileStem:    b.module.FileStem,
		Rooms:       b.rooms.Rooms(),
		Totals:      b.Totals(),
		Labels:      b.Labels(),
		Keys:        b.module.Keys,
	})
}

func (b *Book) logChange(ch editor.Change) {
	fields := []zap.Field{
		zap.String("op", string(ch.Op)),
		zap.String("room_id", ch.RoomID),
	}
	if ch.Op == editor.OpUpdate {
		fields = append(fields,
			zap.String("key", string(ch.Key)),
			zap.String("field", string(ch.Field)),
			zap.Int("value", ch.Value),
		)
	}
	b.logger.Debug("room collection changed", fields...)
}
