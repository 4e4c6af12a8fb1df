package allocator

// heapBase roots the singly-linked list that threads through every
// break-region block (spec.md section 3, "Heap list"). MAPPED blocks are
// never on this list. A zero value means no break region has been
// acquired yet.
var heapBase uintptr

// minSplitPayload is the smallest payload (beyond a header) a block may
// have and still be threaded on the list -- spec.md invariant 1.
const minSplitPayload = wordAlign

// minBlockSize is the smallest total size a listed block may have --
// spec.md invariant 1: size >= ALIGN(sizeof(header)) + A.
var minBlockSize = headerSize + minSplitPayload

// preallocate reserves exactly mmapThreshold bytes via break extension on
// the first qualifying small allocation, and threads the resulting single
// FREE block as heapBase. It is a one-shot event for the life of the
// process: once heapBase is set, this is never called again, regardless of
// which entry point (Allocate or Calloc) triggered it.
func preallocate() bool {
	block := acquireBreakBlock(mmapThreshold)
	if block == nil {
		return false
	}
	block.status = statusFree
	heapBase = block.addr()
	return true
}

// walkList visits every block on the break-region list in address order,
// calling visit(prev, current) for each. prev is nil for heapBase itself.
func walkList(visit func(prev, current *blockHeader)) {
	if heapBase == 0 {
		return
	}

	var prev *blockHeader
	current := headerAt(heapBase)
	for current != nil {
		next := current.nextHeader()
		visit(prev, current)
		prev = current
		current = next
	}
}

// tailBlock returns the last block on the list, or nil if the list is
// empty.
func tailBlock() *blockHeader {
	if heapBase == 0 {
		return nil
	}

	current := headerAt(heapBase)
	for current.next != 0 {
		current = current.nextHeader()
	}
	return current
}

// coalesce performs one left-to-right pass merging adjacent FREE blocks,
// per spec.md section 4.3. Two list neighbours merge only when the first
// ends exactly where the second begins (see breakGrowsInPlace). It returns
// the list's tail after merging, or nil if the list is empty. This must run
// before any placement decision uses the list (spec.md invariant 2).
func coalesce() *blockHeader {
	if heapBase == 0 {
		return nil
	}

	var prev *blockHeader
	current := headerAt(heapBase)

	for current != nil {
		if current.status == statusFree {
			if prev != nil && prev.status == statusFree && prev.addr()+prev.size == current.addr() {
				prev.size += current.size
				prev.next = current.next
				current = prev
			}
			if next := current.nextHeader(); next != nil && next.status == statusFree && current.addr()+current.size == next.addr() {
				current.size += next.size
				current.next = next.next
			}
		}
		prev = current
		current = current.nextHeader()
	}

	return prev
}

// bestFit linearly scans the list for the FREE block of minimum size that
// is still >= requested, breaking ties by first occurrence. It returns nil
// if no FREE block satisfies the request.
func bestFit(requested uintptr) *blockHeader {
	var best *blockHeader
	walkList(func(_, current *blockHeader) {
		if current.status == statusFree && current.size >= requested {
			if best == nil || current.size < best.size {
				best = current
			}
		}
	})
	return best
}

// splitIfProfitable divides block into a used prefix of size requested and
// a FREE suffix, provided the suffix would itself be a valid minimum-size
// block (spec.md's splitting rule). It never changes block's status.
func splitIfProfitable(block *blockHeader, requested uintptr) {
	if block.size < requested+headerSize+minSplitPayload {
		return
	}

	suffixAddr := block.addr() + requested
	suffix := headerAt(suffixAddr)
	suffix.size = block.size - requested
	suffix.status = statusFree
	suffix.next = block.next

	block.size = requested
	block.next = suffixAddr
}

// expandTail extends the program break by exactly the bytes needed to
// bring tail up to aligned bytes, growing tail in place rather than
// leaving a fragment behind it. It returns false if the kernel refused the
// extension, or if this platform's growBreak cannot guarantee the new
// bytes land immediately after tail (see breakGrowsInPlace) -- on such
// platforms the caller falls back to acquiring a fresh block instead.
func expandTail(tail *blockHeader, aligned uintptr) bool {
	if !breakGrowsInPlace() {
		return false
	}

	extra := aligned - tail.size
	start, ok := growBreak(extra)
	if !ok {
		return false
	}
	// The new region begins exactly where tail ends, by construction of
	// growBreak: the program break only ever moves forward from the
	// address this package last observed it at.
	_ = start
	tail.size += extra
	totalBreakBytes += extra
	return true
}

// appendBreakBlock threads a freshly break-acquired block onto the tail of
// the list. It never merges into the existing tail -- even when the tail
// is FREE, a leftover fragment too small for the request is left alone as
// its own block rather than assumed contiguous with the new one, since
// that assumption does not hold on every platform (see breakGrowsInPlace).
func appendBreakBlock(block *blockHeader) {
	if heapBase == 0 {
		heapBase = block.addr()
		return
	}

	tail := tailBlock()
	tail.next = block.addr()
}
