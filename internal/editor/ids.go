package editor

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh room identifier on each call. Identifiers must
// not repeat within a Collection's lifetime.
type IDGenerator func() string

// SequentialIDs returns a generator yielding "1", "2", "3", ...
func SequentialIDs() IDGenerator {
	next := 0
	return func() string {
		next++
		return strconv.Itoa(next)
	}
}

// RandomIDs returns a generator yielding random UUIDv4 strings.
func RandomIDs() IDGenerator {
	return func() string {
		return uuid.New().String()
	}
}

// Scheme names accepted by GeneratorFor.
const (
	SchemeSequence = "sequence"
	SchemeUUID     = "uuid"
)

// GeneratorFor returns the generator for the named scheme. Unknown names
// fall back to SequentialIDs.
func GeneratorFor(scheme string) IDGenerator {
	if scheme == SchemeUUID {
		return RandomIDs()
	}
	return SequentialIDs()
}
