package allocator

import "sync"

// mmapThreshold is M from spec.md section 4.2: the break/map split point
// for the allocate path.
const mmapThreshold uintptr = 131072

var (
	pageSizeOnce sync.Once
	pageSize     uintptr

	// totalBreakBytes is the running total of bytes this package has ever
	// obtained via break extension, used by Validate to check spec.md
	// testable property 4 (sum of listed block sizes equals total break
	// bytes obtained since process start).
	totalBreakBytes uintptr
)

// calloc uses the system page size as its break/map split point P, rather
// than M, because anonymous map memory is kernel-zeroed: the zeroed path
// can afford to reach for mmap much sooner than the allocate path can.
func callocThreshold() uintptr {
	pageSizeOnce.Do(func() {
		pageSize = queryPageSize()
	})
	return pageSize
}

// acquireBreakBlock extends the program break by aligned bytes and returns
// a freshly initialized ALLOC block spanning the new region, or nil if the
// kernel refused (OUT_OF_MEMORY).
func acquireBreakBlock(aligned uintptr) *blockHeader {
	start, ok := growBreak(aligned)
	if !ok {
		return nil
	}

	h := headerAt(start)
	h.size = aligned
	h.status = statusAlloc
	h.next = 0
	totalBreakBytes += aligned
	return h
}

// acquireMappedBlock requests a private anonymous mapping of exactly
// aligned bytes and returns a freshly initialized MAPPED block, or nil if
// the kernel refused (OUT_OF_MEMORY).
func acquireMappedBlock(aligned uintptr) *blockHeader {
	start, ok := mmapAnonymous(aligned)
	if !ok {
		return nil
	}

	h := headerAt(start)
	h.size = aligned
	h.status = statusMapped
	h.next = 0
	return h
}
