//go:build !windows

// Unix page source: anonymous private mappings via syscall.Mmap/Munmap,
// matching the teacher's own internal/jit/memory_unix.go and mem_linux.go
// rather than golang.org/x/sys/unix (see SPEC_FULL.md Domain Stack).

package alloc

import (
	"syscall"
	"unsafe"
)

// mmapRegion acquires a page-aligned region of at least bytes, rounded up
// to a page multiple, and returns its address and the rounded size.
func mmapRegion(bytes int) (unsafe.Pointer, int, error) {
	size := roundUpPages(bytes)
	mem, err := syscall.Mmap(-1, 0, size,
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, 0, err
	}
	return unsafe.Pointer(&mem[0]), size, nil
}

// munmapRegion releases exactly the region previously acquired with that
// byte count (I6: large chunks and bucket chunks alike always unmap the
// mapped size, not the caller's requested size).
func munmapRegion(addr unsafe.Pointer, size int) error {
	mem := unsafe.Slice((*byte)(addr), size)
	return syscall.Munmap(mem)
}
