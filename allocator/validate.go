package allocator

import cerrors "github.com/cockroachdb/errors"

// Validate walks the break-region list once and checks the invariants of
// spec.md section 3: monotonically increasing addresses, every listed
// block meeting the minimum size and alignment, and that the list's total
// size matches what this package has actually obtained from the kernel via
// break. It allocates nothing and is safe to call between any two
// entry-point calls; it is not required for correctness of any entry point
// (see debugValidate for the build-tag-gated variant that entry points call
// automatically).
//
// It deliberately does not assert merge-stability (no two list-adjacent
// FREE blocks): spec.md testable property 2 only guarantees that after any
// allocate/zeroed-allocate/realloc-expand call, never between one Free and
// the next entry point. Free defers coalescing, so a FREE block can sit
// next to another FREE block transiently, and that is not a heap
// inconsistency.
func Validate() error {
	if heapBase == 0 {
		return nil
	}

	var total uintptr
	var lastAddr uintptr

	var walkErr error
	walkList(func(prev, current *blockHeader) {
		if walkErr != nil {
			return
		}

		addr := current.addr()
		if prev != nil && addr <= lastAddr {
			walkErr = cerrors.Wrapf(ErrInconsistentHeap, "block at offset %d does not come after block at offset %d", addr, lastAddr)
			return
		}

		if current.size < minBlockSize {
			walkErr = cerrors.Wrapf(ErrInconsistentHeap, "block at offset %d has size %d, below the minimum %d", addr, current.size, minBlockSize)
			return
		}

		if current.size%wordAlign != 0 {
			walkErr = cerrors.Wrapf(ErrInconsistentHeap, "block at offset %d has unaligned size %d", addr, current.size)
			return
		}

		total += current.size
		lastAddr = addr
	})

	if walkErr != nil {
		return walkErr
	}

	if total != totalBreakBytes {
		return cerrors.Wrapf(ErrInconsistentHeap, "listed blocks total %d bytes, but %d bytes have been obtained from break", total, totalBreakBytes)
	}

	return nil
}
