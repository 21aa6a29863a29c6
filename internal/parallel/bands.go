package parallel

// Band is a horizontal strip of scanlines, rows [Y0, Y1).
//
// Edge detection is a row-streaming stencil with no cross-pixel state,
// so scanline bands are the natural unit of parallel work: each band
// is owned by exactly one work item and no two bands overlap.
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of scanlines in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Bands splits height rows into contiguous non-overlapping bands,
// aiming for several bands per worker so stealing can balance uneven
// rows. Returns nil for a non-positive height.
func Bands(height, workers int) []Band {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}

	// 4 bands per worker keeps queues busy without excessive
	// scheduling overhead; never smaller than one row per band.
	target := workers * 4
	if target > height {
		target = height
	}

	bands := make([]Band, 0, target)
	rowsPerBand := height / target
	extra := height % target

	y := 0
	for i := 0; i < target; i++ {
		rows := rowsPerBand
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}
