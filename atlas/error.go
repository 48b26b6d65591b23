package atlas

import (
	"errors"
	"fmt"
)

// ErrOutOfSlots is returned by Alloc when a backend's free-list and
// slot counter are both exhausted.
var ErrOutOfSlots = errors.New("atlas: out of slots")

// ErrWrongBackend is returned by Free when a TileId names a backend
// index other than the one it is being freed against.
var ErrWrongBackend = errors.New("atlas: wrong backend")

// ErrInvalidSlot is returned by Free when a TileId's slot index is out
// of range for the backend.
var ErrInvalidSlot = errors.New("atlas: invalid slot")

// GenerationMismatchError is returned by Free when a TileId's generation
// does not match the slot's current generation counter. The slot is
// either already free or has been reallocated since the id was issued.
type GenerationMismatchError struct {
	Backend uint8
	Slot    uint32
	Want    uint32
	Got     uint32
}

func (e *GenerationMismatchError) Error() string {
	return fmt.Sprintf("atlas: generation mismatch on backend %d slot %d: have %d, id has %d",
		e.Backend, e.Slot, e.Want, e.Got)
}
