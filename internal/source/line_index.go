package source

import (
	"fmt"

	"fortio.org/safecast"
)

// buildLineIndex records the byte offset of every line start.
// Index 0 is always 0; entry i is the offset just past the i-th newline.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 1, 64)
	idx[0] = 0
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			idx = append(idx, off)
		}
	}
	return idx
}

func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(lineIdx)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineIdx[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return LineCol{
		Line: uint32(lo) + 1,
		Col:  offset - lineIdx[lo] + 1,
	}
}
