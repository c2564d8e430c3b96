package book

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/catalog"
	"github.com/cory-johannsen/schoolstock/internal/editor"
)

// Shelf holds one Book per registered module for the session.
type Shelf struct {
	books []*Book
	byID  map[string]*Book
}

// NewShelf opens a Book for every module in reg. scheme selects the room ID
// generator (editor.SchemeSequence or editor.SchemeUUID).
//
// Postcondition: Books() is in registry order.
func NewShelf(reg *catalog.Registry, scheme string, logger *zap.Logger) *Shelf {
	s := &Shelf{byID: make(map[string]*Book, reg.Len())}
	for _, m := range reg.Modules() {
		b := New(m, editor.GeneratorFor(scheme), logger)
		s.books = append(s.books, b)
		s.byID[m.ID] = b
	}
	return s
}

// Book returns the book for moduleID.
//
// Postcondition: Returns the book, or an error wrapping catalog.ErrUnknownModule.
func (s *Shelf) Book(moduleID string) (*Book, error) {
	b, ok := s.byID[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownModule, moduleID)
	}
	return b, nil
}

// Books returns every book in registry order.
func (s *Shelf) Books() []*Book {
	out := make([]*Book, len(s.books))
	copy(out, s.books)
	return out
}
