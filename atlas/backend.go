package atlas

import "sync"

// Backend owns one atlas's slot array and generation array: a fixed-size
// pool of tile slots plus a LIFO free-list and a per-slot generation
// counter used to detect stale TileIds.
//
// Safe for concurrent use. The app thread performs allocation/release; the
// GPU thread only reads resolved addresses via a Backend handle (see
// spec's shared-resource policy), so Free/Alloc synchronization is the
// only cross-thread concern this type has to solve.
type Backend struct {
	mu sync.Mutex

	index      uint8
	layout     Layout
	totalSlots uint32

	generations []uint32
	free        []uint32 // LIFO free-list of slot indices
	nextSlot    uint32   // next never-before-used slot index
}

// NewBackend creates a backend with the given layout and backend index.
// Per-slot generation counters all start at 0.
func NewBackend(layout Layout, index uint8) *Backend {
	return &Backend{
		index:       index,
		layout:      layout,
		totalSlots:  layout.TotalSlots(),
		generations: make([]uint32, layout.TotalSlots()),
		free:        make([]uint32, 0, 64),
	}
}

// Index returns this backend's index, as packed into the high 8 bits of
// every TileId it mints.
func (b *Backend) Index() uint8 { return b.index }

// Layout returns the tier preset this backend was created with.
func (b *Backend) Layout() Layout { return b.layout }

// TotalSlots returns the fixed slot count for this backend.
func (b *Backend) TotalSlots() uint32 { return b.totalSlots }

// Alloc hands out one fresh TileId, preferring a free-listed slot (LIFO)
// over bumping the monotonic next-slot counter. Returns ErrOutOfSlots
// when both are exhausted.
func (b *Backend) Alloc() (TileId, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allocLocked()
}

func (b *Backend) allocLocked() (TileId, error) {
	if n := len(b.free); n > 0 {
		slot := b.free[n-1]
		b.free = b.free[:n-1]
		return newTileId(b.index, b.generations[slot], slot), nil
	}
	if b.nextSlot >= b.totalSlots {
		return TileId(0), ErrOutOfSlots
	}
	slot := b.nextSlot
	b.nextSlot++
	return newTileId(b.index, b.generations[slot], slot), nil
}

// AllocBatch allocates up to n TileIds, stopping early on ErrOutOfSlots.
// It does not roll back ids already allocated in the batch; the caller
// may see fewer than n entries.
func (b *Backend) AllocBatch(n int) []TileId {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]TileId, 0, n)
	for i := 0; i < n; i++ {
		id, err := b.allocLocked()
		if err != nil {
			break
		}
		out = append(out, id)
	}
	return out
}

// Free releases a TileId back to the backend. On success the slot's
// generation counter increments (wrapping within 24 bits) and the slot
// is pushed onto the free-list.
//
// Returns ErrWrongBackend if id names a different backend index,
// ErrInvalidSlot if id's slot is out of range, or a *GenerationMismatchError
// if id's generation does not match the slot's current generation. State
// is left unmutated on any error.
func (b *Backend) Free(id TileId) error {
	if id.Backend() != b.index {
		return ErrWrongBackend
	}
	slot := id.Slot()

	b.mu.Lock()
	defer b.mu.Unlock()

	if slot >= b.totalSlots {
		return ErrInvalidSlot
	}
	current := b.generations[slot]
	if id.Generation() != current {
		return &GenerationMismatchError{Backend: b.index, Slot: slot, Want: current, Got: id.Generation()}
	}
	b.generations[slot] = (current + 1) % maxGeneration
	b.free = append(b.free, slot)
	return nil
}

// Address decodes a slot index into its (layer, x, y) position according
// to this backend's layout.
func (b *Backend) Address(slot uint32) TileAddress {
	return b.layout.Address(slot)
}
