package alloc

import "unsafe"

// chunkHeader is the common prefix shared by every chunk this allocator
// maps, bucketed or large. bucketIndex is the sentinel largeClass (-1) for
// a large allocation's chunk, or the owning size class otherwise; size is
// the exact byte length mmap returned, needed to munmap precisely.
type chunkHeader struct {
	size        uintptr
	bucketIndex int32
}

// bucketChunk is a chunkHeader plus the bookkeeping a bucketed chunk needs:
// which arena it belongs to (so free can find the right lock without a
// side table), its position in that arena's per-class sibling list, and
// its slot occupancy bitmap. Its address is also the start of the mapped
// region; slot i begins at unsafe.Sizeof(bucketChunk{}) + i*elementSize.
type bucketChunk struct {
	chunkHeader
	arenaIndex int32
	prev, next *bucketChunk
	bitmap     bitmap256
}

// largeChunk is a chunkHeader with nothing else: the payload's block
// header and bytes follow immediately after it in the mapped region.
type largeChunk struct {
	chunkHeader
}

// blockHeader precedes every payload handed to a caller. It carries the
// address of the containing chunk; free reads it to classify and locate
// the chunk without any other bookkeeping. It is never rewritten after a
// slot is claimed (I4).
type blockHeader struct {
	parent *chunkHeader
}

var (
	bucketChunkHeaderSize = unsafe.Sizeof(bucketChunk{})
	largeChunkHeaderSize  = unsafe.Sizeof(largeChunk{})
	blockHeaderSize       = unsafe.Sizeof(blockHeader{})
)

// header returns a *bucketChunk's or *largeChunk's shared leading
// chunkHeader. Valid because chunkHeader is always the
// first field of both, so the two addresses coincide.
func (c *bucketChunk) header() *chunkHeader { return &c.chunkHeader }
func (c *largeChunk) header() *chunkHeader  { return &c.chunkHeader }

// asBucketChunk reinterprets a chunk header known (by bucketIndex != -1)
// to belong to a bucketChunk back into that type.
func asBucketChunk(h *chunkHeader) *bucketChunk {
	return (*bucketChunk)(unsafe.Pointer(h))
}

// slotAddr computes the address of slot i (its blockHeader, not its
// payload) within chunk.
func slotAddr(chunk *bucketChunk, elementSize, i int) unsafe.Pointer {
	base := uintptr(unsafe.Pointer(chunk)) + bucketChunkHeaderSize
	return unsafe.Pointer(base + uintptr(i)*uintptr(elementSize))
}

// slotIndex recovers i from a slot's blockHeader address, by construction
// exact since slots are laid out as a flat array of elementSize-strided
// entries starting right after the chunk header.
func slotIndex(chunk *bucketChunk, elementSize int, blockAddr unsafe.Pointer) int {
	base := uintptr(unsafe.Pointer(chunk)) + bucketChunkHeaderSize
	return int((uintptr(blockAddr) - base) / uintptr(elementSize))
}

// payloadFromBlock returns the payload pointer that sits right after a
// stamped block header at addr.
func payloadFromBlock(addr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(addr) + blockHeaderSize)
}

// blockFromPayload recovers the block header preceding a payload pointer.
func blockFromPayload(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(p) - blockHeaderSize))
}
