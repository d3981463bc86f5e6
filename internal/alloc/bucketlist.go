package alloc

import "unsafe"

// findOrCreateChunk walks list's siblings looking for one with a free
// slot, creating a fresh chunk via the page source on a full traversal
// (§4.5). The caller must already hold the owning arena's lock.
func findOrCreateChunk(list *chunkList, cls, arenaIdx int) *bucketChunk {
	head := &list.sentinel
	for c := head.next; c != head; c = c.next {
		if !c.bitmap.equal(allBusy) {
			return c
		}
	}
	return growChunk(list, cls, arenaIdx)
}

// growChunk maps a fresh chunk for class cls, stamps its header, and
// links it at the front of list — newly created chunks are where the
// next allocation is likely to look (a heuristic, not an invariant).
func growChunk(list *chunkList, cls, arenaIdx int) *bucketChunk {
	class := &schedule[cls]
	addr, mapped, err := mmapRegion(class.pages * pageSize)
	if err != nil {
		fatalMapFailure(mmapFailure{op: "mmap(bucket)", bytes: class.pages * pageSize, err: err})
	}
	chunk := (*bucketChunk)(addr)
	chunk.size = uintptr(mapped)
	chunk.bucketIndex = int32(cls)
	chunk.arenaIndex = int32(arenaIdx)
	chunk.bitmap = class.empty

	head := &list.sentinel
	chunk.next = head.next
	chunk.next.prev = chunk
	chunk.prev = head
	head.next = chunk

	debugChunkCreated(arenaIdx, cls, uintptr(addr))
	return chunk
}

// claimSlot finds chunk's first free slot, marks it busy, stamps its
// block header, and returns the payload pointer just past that header.
func claimSlot(chunk *bucketChunk, cls int) unsafe.Pointer {
	i := chunk.bitmap.findFirstZero()
	chunk.bitmap.flip(i)
	addr := slotAddr(chunk, schedule[cls].elementSize, i)
	blk := (*blockHeader)(addr)
	blk.parent = chunk.header()
	return payloadFromBlock(addr)
}

// releaseSlot marks the slot at blockAddr free within chunk and, if that
// was the chunk's last live allocation, unlinks it from its sibling list
// and returns its region to the page source (I3). The caller must hold
// the owning arena's lock.
func releaseSlot(chunk *bucketChunk, cls int, blockAddr unsafe.Pointer) {
	class := &schedule[cls]
	i := slotIndex(chunk, class.elementSize, blockAddr)
	chunk.bitmap.flip(i)

	if !chunk.bitmap.equal(class.empty) {
		return
	}

	chunk.prev.next = chunk.next
	chunk.next.prev = chunk.prev

	addr := unsafe.Pointer(chunk)
	size := int(chunk.size)
	if err := munmapRegion(addr, size); err != nil {
		fatalMapFailure(mmapFailure{op: "munmap(bucket)", bytes: size, err: err})
	}
	debugChunkReleased(int(chunk.arenaIndex), cls, uintptr(addr))
}
