package atlas

import "image"

// SeedFromImage tiles img according to backend's layout and allocates one
// slot per tile, returning the allocated ids in row-major tile order.
// Tiles that only partially cover the image bounds are still allocated;
// the allocator has no notion of pixel content, only slot occupancy, so
// zero-padding beyond the image bounds is the caller's concern when it
// later uploads pixels for these ids.
//
// Returns ErrOutOfSlots if the image needs more tiles than the backend
// still has free (counting every layer); the ids allocated before the
// failure are returned alongside the error and remain allocated.
func (b *Backend) SeedFromImage(img image.Image) ([]TileId, error) {
	edge := b.layout.TilesPerEdge()
	bounds := img.Bounds()
	tileCols := (uint32(bounds.Dx()) + edge - 1) / edge
	tileRows := (uint32(bounds.Dy()) + edge - 1) / edge
	if tileCols == 0 {
		tileCols = 1
	}
	if tileRows == 0 {
		tileRows = 1
	}

	n := int(tileCols * tileRows)
	ids := make([]TileId, 0, n)
	for i := 0; i < n; i++ {
		id, err := b.Alloc()
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
