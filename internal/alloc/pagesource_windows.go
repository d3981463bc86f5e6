//go:build windows

// Windows page source: VirtualAlloc/VirtualFree via golang.org/x/sys/windows,
// grounded on the teacher's internal/jit/mmap_windows.go and
// memory_windows.go (which reach for the same calls through a hand-rolled
// kernel32 NewLazySystemDLL/NewProc shim; this module uses the typed
// wrapper x/sys/windows already exposes instead of redoing that shim).

package alloc

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func mmapRegion(bytes int) (unsafe.Pointer, int, error) {
	size := roundUpPages(bytes)
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, 0, err
	}
	return unsafe.Pointer(addr), size, nil
}

func munmapRegion(addr unsafe.Pointer, size int) error {
	return windows.VirtualFree(uintptr(addr), 0, windows.MEM_RELEASE)
}
