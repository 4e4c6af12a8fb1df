package allocator

import "unsafe"

// wordAlign is the machine alignment A referenced throughout this package.
// The allocator never hands out pointers less aligned than this, and every
// size stored in a header is rounded up to a multiple of it.
const wordAlign = 8

// headerSize is ALIGN(sizeof(header)) from the spec: the fixed distance
// between the start of a block and the user pointer returned for it.
var headerSize = align(unsafe.Sizeof(blockHeader{}))

// align rounds value up to the next multiple of wordAlign.
func align(value uintptr) uintptr {
	return (value + wordAlign - 1) &^ (wordAlign - 1)
}

// alignedSize computes the canonical aligned request size for a user
// request of userSize bytes: header plus aligned payload.
func alignedSize(userSize uintptr) uintptr {
	return headerSize + align(userSize)
}

// headerAt reinterprets the raw address addr as a block header. This, along
// with userPointer, headerFromUser and headerAddr, is the package's whole set
// of header/user-pointer conversions; every other routine composes these
// instead of doing its own pointer arithmetic.
func headerAt(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

// userPointer returns the pointer handed to a caller for the block h,
// i.e. address(h) + headerSize.
func userPointer(h *blockHeader) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(h)) + headerSize)
}

// headerFromUser recovers the header owning a pointer previously returned
// by userPointer. Behavior is undefined if ptr was not issued by this
// allocator.
func headerFromUser(ptr unsafe.Pointer) *blockHeader {
	return headerAt(uintptr(ptr) - headerSize)
}

// headerAddr returns the raw address of a header.
func headerAddr(h *blockHeader) uintptr {
	return uintptr(unsafe.Pointer(h))
}

// zeroBytes zeroes exactly n user bytes starting at ptr. Calloc uses this
// to zero only the user region, never the whole block -- the suffix beyond
// it is either trailing alignment padding or a separate block, and in
// neither case is zeroing it this allocator's responsibility.
func zeroBytes(ptr unsafe.Pointer, n uintptr) {
	clear(unsafe.Slice((*byte)(ptr), int(n)))
}

// copyBytes copies exactly n bytes from src to dst. Used by Realloc when a
// move is unavoidable.
func copyBytes(dst, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), int(n)), unsafe.Slice((*byte)(src), int(n)))
}
