// Package allocator implements a minimal general-purpose dynamic memory
// allocator on top of two kernel primitives: program-break extension and
// anonymous private mapping. It is meant to stand in for the platform
// allocator in single-threaded programs where the placement policy
// (best-fit with splitting and coalescing) needs to be visible and
// controllable, not hidden behind libc.
//
// The four entry points -- Allocate, Free, Calloc, Realloc -- are not
// thread-safe: every invariant below assumes a single caller at a time.
package allocator

import "unsafe"

// Allocate returns a pointer to size freshly usable bytes, or nil if size
// is zero or the kernel refused the backing memory (OUT_OF_MEMORY).
// Returned pointers are always aligned to wordAlign bytes.
func Allocate(size uintptr) unsafe.Pointer {
	debugValidate()
	defer debugValidate()

	if size == 0 {
		return nil
	}

	aligned := alignedSize(size)

	if heapBase == 0 && aligned < mmapThreshold {
		if !preallocate() {
			return nil
		}
	}

	tail := coalesce()

	if block := bestFit(aligned); block != nil {
		splitIfProfitable(block, aligned)
		block.status = statusAlloc
		return userPointer(block)
	}

	if tail != nil && tail.status == statusFree && expandTail(tail, aligned) {
		splitIfProfitable(tail, aligned)
		tail.status = statusAlloc
		return userPointer(tail)
	}

	return acquireFresh(aligned)
}

// acquireFresh obtains a brand new region for a request that could not be
// satisfied by the existing break-region list, dispatching to break or map
// backing storage by the mmapThreshold, and returns its user pointer.
func acquireFresh(aligned uintptr) unsafe.Pointer {
	if aligned < mmapThreshold {
		block := acquireBreakBlock(aligned)
		if block == nil {
			return nil
		}
		appendBreakBlock(block)
		return userPointer(block)
	}

	block := acquireMappedBlock(aligned)
	if block == nil {
		return nil
	}
	registerMapped(block.addr(), block.size)
	return userPointer(block)
}

// Free releases the block backing ptr. A nil ptr is a no-op. Freeing a
// pointer not issued by Allocate/Calloc/Realloc, or freeing the same
// pointer twice, is undefined behavior -- spec.md section 6.
func Free(ptr unsafe.Pointer) {
	debugValidate()
	defer debugValidate()

	if ptr == nil {
		return
	}

	block := headerFromUser(ptr)
	switch block.status {
	case statusAlloc:
		block.status = statusFree
		// Coalescing is deferred to the next entry point, per spec.md
		// section 4.4 -- never performed eagerly here.
	case statusMapped:
		addr := block.addr()
		size := block.size
		unregisterMapped(addr)
		munmapRegion(addr, size)
	}
}

// Calloc returns a pointer to nmemb*size zeroed bytes, or nil if either
// operand is zero or the kernel refused the backing memory. It follows
// Allocate's structure but uses the system page size as its break/map
// threshold rather than mmapThreshold, since map-backed memory arrives
// already zeroed by the kernel.
func Calloc(nmemb, size uintptr) unsafe.Pointer {
	debugValidate()
	defer debugValidate()

	if nmemb == 0 || size == 0 {
		return nil
	}

	userSize := nmemb * size
	aligned := alignedSize(userSize)
	threshold := callocThreshold()

	if heapBase == 0 && aligned < threshold {
		if !preallocate() {
			return nil
		}
	}

	tail := coalesce()

	var ptr unsafe.Pointer
	if block := bestFit(aligned); block != nil {
		splitIfProfitable(block, aligned)
		block.status = statusAlloc
		ptr = userPointer(block)
	} else if tail != nil && tail.status == statusFree && expandTail(tail, aligned) {
		splitIfProfitable(tail, aligned)
		tail.status = statusAlloc
		ptr = userPointer(tail)
	} else {
		ptr = acquireFreshThreshold(aligned, threshold)
		if ptr == nil {
			return nil
		}
	}

	zeroBytes(ptr, userSize)
	return ptr
}

// acquireFreshThreshold is acquireFresh generalized over the caller's
// break/map split point, used by Calloc with threshold P in place of
// mmapThreshold (spec.md section 4.2).
func acquireFreshThreshold(aligned, threshold uintptr) unsafe.Pointer {
	if aligned < threshold {
		block := acquireBreakBlock(aligned)
		if block == nil {
			return nil
		}
		appendBreakBlock(block)
		return userPointer(block)
	}

	block := acquireMappedBlock(aligned)
	if block == nil {
		return nil
	}
	registerMapped(block.addr(), block.size)
	return userPointer(block)
}

// Realloc implements the state machine of spec.md section 4.4: delegating
// to Allocate/Free at the edges, returning ptr unchanged when no resize is
// needed, copying min(oldUserSize, newUserSize) bytes on a move, and
// preferring in-place expansion over a fresh allocation whenever the
// break-region list permits it.
func Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	debugValidate()
	defer debugValidate()

	if ptr == nil {
		return Allocate(size)
	}
	if size == 0 {
		Free(ptr)
		return nil
	}

	block := headerFromUser(ptr)
	if block.status == statusFree {
		// Reallocating a freed block is undefined behavior in general,
		// but this one common case is given a defined result.
		return nil
	}

	aligned := alignedSize(size)
	if block.size == aligned {
		return ptr
	}

	if block.status == statusMapped {
		return reallocMoved(ptr, block, size)
	}

	if block.size >= aligned {
		splitIfProfitable(block, aligned)
		return ptr
	}

	coalesce()
	if expandInPlace(block, aligned) {
		splitIfProfitable(block, aligned)
		return ptr
	}

	return reallocMoved(ptr, block, size)
}

// expandInPlace merges block forward with consecutive FREE successors
// until it is at least aligned bytes, regardless of block's own (ALLOC)
// status -- this is the expansion walk called out in spec.md section 4.4,
// distinct from the general coalescing pass because it operates on an
// ALLOC block.
func expandInPlace(block *blockHeader, aligned uintptr) bool {
	for block.size < aligned {
		next := block.nextHeader()
		if next == nil || next.status != statusFree || block.addr()+block.size != next.addr() {
			return false
		}
		block.size += next.size
		block.next = next.next
	}
	return true
}

// reallocMoved allocates a fresh block, copies the lesser of the old and
// new user sizes, frees the original, and returns the fresh pointer (or
// nil, leaving the original block untouched, if the fresh allocation
// failed).
func reallocMoved(oldPtr unsafe.Pointer, oldBlock *blockHeader, newUserSize uintptr) unsafe.Pointer {
	newPtr := Allocate(newUserSize)
	if newPtr == nil {
		return nil
	}

	oldUserSize := oldBlock.size - headerSize
	copySize := oldUserSize
	if newUserSize < copySize {
		copySize = newUserSize
	}
	copyBytes(newPtr, oldPtr, copySize)

	Free(oldPtr)
	return newPtr
}
