// Package alloc implements the three-operation concurrent bucketed heap
// allocator described by this repository's specification: Allocate, Free,
// and Reallocate, backed directly by anonymous memory from the operating
// system rather than the Go runtime's own allocator.
//
// See spec.md for the full design and DESIGN.md for how each piece is
// grounded in the reference material this module was built from.
package alloc

import "unsafe"

// maxRequest mirrors the spec's "assertion that requested_bytes < INT_MAX
// is mandatory on hot-path entry" (§4.8 Failure semantics).
const maxRequest = 1<<31 - 1

// Allocate returns a pointer to at least n writable bytes, aligned to the
// platform's maximum scalar alignment by construction (every bucket
// element size is a multiple of 8 and the block header is pointer-sized).
// It never returns nil for success: a mapping failure from the operating
// system is fatal and aborts the process (spec.md §7.1). n must be
// non-negative and less than maxRequest, or Allocate panics — this is the
// programmer-misuse class of error (spec.md §7.2), not a recoverable one.
func Allocate(n int) unsafe.Pointer {
	if n < 0 || n >= maxRequest {
		panic("alloc: requested size out of range")
	}
	size := n + int(blockHeaderSize)
	cls := classify(size)
	if cls == largeClass {
		return allocateLarge(size)
	}
	return allocateBucketed(cls)
}

func allocateBucketed(cls int) unsafe.Pointer {
	a, idx := acquireArenaForAlloc()
	defer a.mu.Unlock()
	chunk := findOrCreateChunk(&a.lists[cls], cls, idx)
	return claimSlot(chunk, cls)
}

// Free releases a pointer previously returned by Allocate or Reallocate
// and not yet freed. p == nil is a no-op. Freeing any other pointer is
// undefined behavior this allocator does not detect (spec.md §7.2).
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	blk := blockFromPayload(p)
	parent := blk.parent

	if parent.bucketIndex == largeClass {
		freeLarge((*largeChunk)(unsafe.Pointer(parent)))
		return
	}

	chunk := asBucketChunk(parent)
	cls := int(chunk.bucketIndex)
	a := acquireArenaForFree(int(chunk.arenaIndex))
	defer a.mu.Unlock()
	releaseSlot(chunk, cls, unsafe.Pointer(blk))
}

// Reallocate implements the spec's allocate-copy-free contract (§4.8):
// a nil p behaves as Allocate(n); an n of zero with a non-nil p behaves as
// Free(p) and returns nil; otherwise the old content (up to the smaller of
// the old usable size and n) is preserved at a freshly allocated address.
func Reallocate(p unsafe.Pointer, n int) unsafe.Pointer {
	if p == nil {
		return Allocate(n)
	}
	if n == 0 {
		Free(p)
		return nil
	}

	oldUsable := usableSize(p)
	q := Allocate(n)

	copySize := oldUsable
	if n < copySize {
		copySize = n
	}
	if copySize > 0 {
		dst := unsafe.Slice((*byte)(q), copySize)
		src := unsafe.Slice((*byte)(p), copySize)
		copy(dst, src)
	}

	Free(p)
	return q
}

// usableSize returns the number of payload bytes available at p, per the
// class's element size (bucketed) or the chunk's mapped size (large),
// each less the headers they carry.
func usableSize(p unsafe.Pointer) int {
	blk := blockFromPayload(p)
	parent := blk.parent
	if parent.bucketIndex == largeClass {
		return int(parent.size) - int(largeChunkHeaderSize) - int(blockHeaderSize)
	}
	return schedule[parent.bucketIndex].elementSize - int(blockHeaderSize)
}
