//go:build !linux

package allocator

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// brk(2) is Linux-specific -- it is deprecated and effectively unsupported
// on Darwin, and does not exist on Windows. On these platforms the
// break-region backing store degrades to an anonymous mapping per
// preallocation/expansion call: every acquisition that spec.md describes
// as "break" is serviced by mmapAnonymous instead, one region at a time,
// which still satisfies the break-region invariants (a single contiguous
// region per acquisition, threaded on the list like any other break block)
// even though it no longer amortizes kernel calls the way real sbrk(2)
// growth does.
func growBreak(delta uintptr) (start uintptr, ok bool) {
	return mmapAnonymous(delta)
}

func mmapAnonymous(size uintptr) (addr uintptr, ok bool) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, false
	}
	return uintptr(unsafe.Pointer(&data[0])), true
}

func munmapRegion(addr, size uintptr) {
	region := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size))
	_ = unix.Munmap(region)
}

func queryPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// breakGrowsInPlace reports whether consecutive growBreak calls return
// memory contiguous with what the previous call returned. False here: each
// call is an independent anonymous mapping, so the break region can never
// be grown in place -- expandTail must not be attempted on this platform.
func breakGrowsInPlace() bool {
	return false
}
