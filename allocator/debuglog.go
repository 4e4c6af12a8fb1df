package allocator

import "golang.org/x/exp/slog"

// DebugLogAllAllocations logs one structured entry per live allocation --
// every non-FREE break-region block and every entry in the mapped-region
// registry -- to the given logger. It is a diagnostic only: none of the
// four entry points call it, and it never mutates allocator state.
func DebugLogAllAllocations(log *slog.Logger) {
	walkList(func(_, current *blockHeader) {
		if current.status == statusFree {
			return
		}
		log.Debug("live allocation",
			slog.Uint64("offset", uint64(current.addr())),
			slog.Uint64("size", uint64(current.size)),
			slog.String("status", current.status.String()),
		)
	})

	mappedRegistry.Iter(func(addr uintptr, size uintptr) bool {
		log.Debug("live allocation",
			slog.Uint64("offset", uint64(addr)),
			slog.Uint64("size", uint64(size)),
			slog.String("status", statusMapped.String()),
		)
		return false
	})
}
