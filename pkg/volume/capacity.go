package volume

import (
	"fmt"
	"math"
)

// maxExactJSONInteger is the largest integer a double-precision consumer can
// round-trip exactly (2^53). Capacity figures above this are still reported
// as exact uint64 values, but the record is annotated so JSON consumers know
// the number may lose precision on their side.
const maxExactJSONInteger = uint64(1) << 53

// Capacity holds the byte-accurate size figures for one volume.
type Capacity struct {
	SizeBytes      uint64
	UsedBytes      uint64
	AvailableBytes uint64

	// Clamped reports that UsedBytes was reduced to preserve the invariant
	// UsedBytes + AvailableBytes <= SizeBytes. Expected on filesystems with
	// reserved blocks (ext4 root reserve).
	Clamped bool
}

// wouldOverflow reports whether a*b would exceed math.MaxUint64.
//
// Must be called before the multiplication. Overflow occurs iff
// a > MaxUint64 / b; the b > 0 guard avoids division by zero.
func wouldOverflow(a, b uint64) bool {
	return b > 0 && a > math.MaxUint64/b
}

// ComputeCapacity converts native block figures into byte counts.
//
// The block math is:
//
//	size      = blockSize * totalBlocks
//	available = blockSize * availBlocks
//	used      = size - blockSize * freeBlocks
//
// Each multiplication is overflow-checked first; on overflow the function
// fails fast with ErrOverflow naming the figure, never a wrapped value.
//
// freeBlocks counts all free blocks including the reserved ones only root
// may use, while availBlocks counts blocks available to unprivileged
// callers, so used + available can exceed size on reserved-block
// filesystems. The result is clamped (used = size - available) to keep the
// invariant; Clamped records that this happened.
//
// Platforms that report plain byte totals instead of blocks (windows) pass
// blockSize = 1.
func ComputeCapacity(blockSize, totalBlocks, freeBlocks, availBlocks uint64) (Capacity, error) {
	if wouldOverflow(blockSize, totalBlocks) {
		return Capacity{}, fmt.Errorf("total size (%d blocks of %d bytes): %w", totalBlocks, blockSize, ErrOverflow)
	}
	if wouldOverflow(blockSize, availBlocks) {
		return Capacity{}, fmt.Errorf("available space (%d blocks of %d bytes): %w", availBlocks, blockSize, ErrOverflow)
	}
	if wouldOverflow(blockSize, freeBlocks) {
		return Capacity{}, fmt.Errorf("free space (%d blocks of %d bytes): %w", freeBlocks, blockSize, ErrOverflow)
	}

	size := blockSize * totalBlocks
	available := blockSize * availBlocks
	free := blockSize * freeBlocks

	var used uint64
	if free < size {
		used = size - free
	}

	c := Capacity{
		SizeBytes:      size,
		UsedBytes:      used,
		AvailableBytes: available,
	}

	if c.AvailableBytes > c.SizeBytes {
		// A filesystem reporting more available than total is lying; keep
		// size authoritative.
		c.AvailableBytes = c.SizeBytes
		c.Clamped = true
	}
	if c.UsedBytes+c.AvailableBytes > c.SizeBytes {
		c.UsedBytes = c.SizeBytes - c.AvailableBytes
		c.Clamped = true
	}

	return c, nil
}

// exceedsExactJSONRange reports whether any figure in c cannot round-trip
// through a double-precision number.
func (c Capacity) exceedsExactJSONRange() bool {
	return c.SizeBytes > maxExactJSONInteger ||
		c.UsedBytes > maxExactJSONInteger ||
		c.AvailableBytes > maxExactJSONInteger
}
