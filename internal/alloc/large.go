package alloc

import "unsafe"

// allocateLarge serves a request too big for any bucket. size is already
// the post-header byte count (requested bytes plus the per-allocation
// block header) — matching original_source/opt_malloc.c's xbig_malloc,
// which receives the same pre-computed value from xmalloc and adds only
// sizeof(chunk_head), not a second block header.
func allocateLarge(size int) unsafe.Pointer {
	total := size + int(largeChunkHeaderSize)
	addr, mapped, err := mmapRegion(total)
	if err != nil {
		fatalMapFailure(mmapFailure{op: "mmap(large)", bytes: total, err: err})
	}

	chunk := (*largeChunk)(addr)
	chunk.size = uintptr(mapped)
	chunk.bucketIndex = int32(largeClass)

	blockAddr := unsafe.Pointer(uintptr(addr) + largeChunkHeaderSize)
	blk := (*blockHeader)(blockAddr)
	blk.parent = chunk.header()

	debugLargeAlloc(mapped)
	return payloadFromBlock(blockAddr)
}

// freeLarge releases a large chunk's entire mapped region in one shot
// (I6); no arena lock is involved, since each large mapping is
// independent of every other allocation (§4.7).
func freeLarge(chunk *largeChunk) {
	size := int(chunk.size)
	addr := unsafe.Pointer(chunk)
	if err := munmapRegion(addr, size); err != nil {
		fatalMapFailure(mmapFailure{op: "munmap(large)", bytes: size, err: err})
	}
}
