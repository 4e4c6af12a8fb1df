//go:build linux

package allocator

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// currentBreak holds the process break as last observed by this package.
// The standard library does not wrap brk(2) (glibc itself only exposes it
// indirectly through sbrk, and Go programs do not use either under the
// runtime's own allocator), so this package tracks it the same way sbrk
// tracks its notion of "current break": by remembering the last value it
// moved the break to.
var currentBreak uintptr

// sysBrk issues the raw brk(2) syscall and returns the kernel's resulting
// break. brk(2) always returns the current break whether or not addr was
// honored, so callers detect failure by comparing the result to addr.
func sysBrk(addr uintptr) uintptr {
	result, _, _ := unix.RawSyscall(unix.SYS_BRK, addr, 0, 0)
	return result
}

// growBreak extends the program break by delta bytes and returns the
// address the new region starts at, or ok=false if the kernel refused.
func growBreak(delta uintptr) (start uintptr, ok bool) {
	if currentBreak == 0 {
		currentBreak = sysBrk(0)
	}

	start = currentBreak
	newBreak := sysBrk(start + delta)
	if newBreak != start+delta {
		return 0, false
	}

	currentBreak = newBreak
	return start, true
}

// mmapAnonymous requests a private anonymous read+write mapping of exactly
// size bytes and returns its base address, or ok=false on refusal.
func mmapAnonymous(size uintptr) (addr uintptr, ok bool) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, false
	}
	return uintptr(unsafe.Pointer(&data[0])), true
}

// munmapRegion releases a previously mmapAnonymous'd region of size bytes
// starting at addr.
func munmapRegion(addr, size uintptr) {
	region := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	_ = unix.Munmap(region)
}

// queryPageSize returns the system page size, used as the map threshold P
// on the zeroed-allocate path.
func queryPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// breakGrowsInPlace reports whether consecutive growBreak calls return
// memory contiguous with what the previous call returned. True here: the
// kernel's break only ever moves forward from wherever this package last
// observed it.
func breakGrowsInPlace() bool {
	return true
}
