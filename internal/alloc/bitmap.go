// Package alloc implements a concurrent, bucketed heap allocator backed by
// anonymous memory obtained directly from the operating system.
package alloc

import "math/bits"

// bitmap256 is a 256-bit occupancy vector, stored as four 64-bit lanes.
// 1 means a slot is busy (or does not exist); 0 means free.
//
// Index-to-lane mapping: bits 0..63 live in w[3] (least-significant lane),
// 64..127 in w[2], 128..191 in w[1], 192..255 in w[0]. Any consistent
// mapping satisfies the spec; this one keeps lane 3 as "the low end" so
// find-first-zero scans lanes in the same order flip addresses them.
type bitmap256 struct {
	w [4]uint64
}

var allBusy = bitmap256{w: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}

func laneAndShift(index int) (lane, shift int) {
	return 3 - index/64, index % 64
}

func (b *bitmap256) and(o bitmap256) {
	for i := range b.w {
		b.w[i] &= o.w[i]
	}
}

func (b *bitmap256) or(o bitmap256) {
	for i := range b.w {
		b.w[i] |= o.w[i]
	}
}

func (b *bitmap256) not() {
	for i := range b.w {
		b.w[i] = ^b.w[i]
	}
}

func (b bitmap256) equal(o bitmap256) bool {
	return b.w == o.w
}

// flip toggles the bit at index, which must be in [0, 256).
func (b *bitmap256) flip(index int) {
	lane, shift := laneAndShift(index)
	b.w[lane] ^= uint64(1) << uint(shift)
}

// findFirstZero returns the smallest i such that bit i is 0, or 256 if the
// bitmap is entirely 1s (no free slot).
func (b bitmap256) findFirstZero() int {
	for lane := 3; lane >= 0; lane-- {
		if comp := ^b.w[lane]; comp != 0 {
			return (3-lane)*64 + bits.TrailingZeros64(comp)
		}
	}
	return 256
}

// emptyPattern builds the "all real slots free" constant for a class with
// the given slot count: bits [0, slotCount) are 0, bits [slotCount, 256)
// are 1 so that find-first-zero naturally skips positions past the last
// real slot and EQUAL against allBusy is the exact "every slot taken" test.
func emptyPattern(slotCount int) bitmap256 {
	var bm bitmap256
	for i := slotCount; i < 256; i++ {
		bm.flip(i)
	}
	return bm
}
