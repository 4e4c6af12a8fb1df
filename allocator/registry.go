package allocator

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
)

// mappedRegistry records address -> size for every live MAPPED block.
// MAPPED blocks are never threaded on the break-region list (spec.md
// invariant 4), so without a registry there would be no way to answer
// "how many mapped bytes are outstanding" for statistics, or to tell a
// live mapped allocation apart from a stray address in InspectMapped.
//
// This plays the same role as TLSFBlockMetadata.handleKey in the teacher
// package, but keyed on the real address handed to the caller rather than
// an opaque handle, because this allocator returns raw pointers.
var mappedRegistry = swiss.NewMap[uintptr, uintptr](16)

func registerMapped(addr, size uintptr) {
	mappedRegistry.Put(addr, size)
}

func unregisterMapped(addr uintptr) (size uintptr, ok bool) {
	size, ok = mappedRegistry.Get(addr)
	if !ok {
		return 0, false
	}
	mappedRegistry.Delete(addr)
	return size, true
}

func mappedSize(addr uintptr) (uintptr, bool) {
	return mappedRegistry.Get(addr)
}

// InspectMapped reports the size of the live MAPPED region starting at
// addr, or ErrUnknownHandle if addr does not name one. Diagnostic only --
// no entry point calls this, and it never mutates the registry.
func InspectMapped(addr uintptr) (uintptr, error) {
	size, ok := mappedSize(addr)
	if !ok {
		return 0, cerrors.Wrapf(ErrUnknownHandle, "address %d", addr)
	}
	return size, nil
}

// sumMapped returns the total bytes and count currently tracked by the
// registry, used by CollectStatistics.
func sumMapped() (totalBytes uintptr, count int) {
	mappedRegistry.Iter(func(_ uintptr, size uintptr) bool {
		totalBytes += size
		count++
		return false
	})
	return totalBytes, count
}
