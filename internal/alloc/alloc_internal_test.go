package alloc

import (
	"fmt"
	"unsafe"

	"go.uber.org/multierr"
)

// sweepIdleChunksForTest walks every arena's per-class chunk lists and
// force-unmaps any chunk whose bitmap has gone fully empty but that
// releaseSlot's own eager unmap somehow missed (it never should, per I3 —
// this is a teardown safety net for property tests that hammer the
// allocator across many iterations, not a path exercised in production).
// Every idle chunk it finds is reported as an error, together with any
// unmap failure; errors from multiple arenas are aggregated with multierr
// rather than stopping at the first one, so a single find doesn't hide others.
func sweepIdleChunksForTest() error {
	if !arenasInitialized() {
		return nil
	}

	var errs error
	for i := range arenas {
		a := &arenas[i]
		a.mu.Lock()
		for c := range a.lists {
			list := &a.lists[c]
			head := &list.sentinel
			for chunk := head.next; chunk != head; {
				next := chunk.next
				if chunk.bitmap.equal(schedule[c].empty) {
					size := int(chunk.size)
					addr := unsafe.Pointer(chunk)
					errs = multierr.Append(errs, fmt.Errorf("arena %d class %d: idle chunk %p was still linked", i, c, addr))
					chunk.prev.next = chunk.next
					chunk.next.prev = chunk.prev
					if err := munmapRegion(addr, size); err != nil {
						errs = multierr.Append(errs, err)
					}
				}
				chunk = next
			}
		}
		a.mu.Unlock()
	}
	return errs
}
