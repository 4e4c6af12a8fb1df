package allocator

import "math"

// Statistics summarizes the allocator's current state: how many blocks it
// manages (break-region blocks plus mapped regions), how many of those are
// live allocations, and how many bytes each category accounts for.
type Statistics struct {
	BlockCount      int
	AllocationCount int
	BlockBytes      uintptr
	AllocationBytes uintptr
}

func (s *Statistics) clear() {
	*s = Statistics{}
}

func (s *Statistics) addStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.AllocationCount += other.AllocationCount
	s.BlockBytes += other.BlockBytes
	s.AllocationBytes += other.AllocationBytes
}

// DetailedStatistics extends Statistics with the size distribution of free
// ranges and live allocations, grounded on memutils.DetailedStatistics.
type DetailedStatistics struct {
	Statistics
	UnusedRangeCount   int
	AllocationSizeMin  uintptr
	AllocationSizeMax  uintptr
	UnusedRangeSizeMin uintptr
	UnusedRangeSizeMax uintptr
}

func (s *DetailedStatistics) clear() {
	s.Statistics.clear()
	s.UnusedRangeCount = 0
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
	s.UnusedRangeSizeMin = math.MaxInt
	s.UnusedRangeSizeMax = 0
}

func (s *DetailedStatistics) addUnusedRange(size uintptr) {
	s.UnusedRangeCount++
	if size < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = size
	}
	if size > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = size
	}
}

func (s *DetailedStatistics) addAllocation(size uintptr) {
	s.AllocationCount++
	s.AllocationBytes += size
	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}
	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

// CollectStatistics walks the break-region list and the mapped-region
// registry and returns a fresh summary of the allocator's current state.
// It is a diagnostic: no entry point calls it, and calling it never
// changes allocator behavior.
func CollectStatistics() Statistics {
	var fromList Statistics
	walkList(func(_, current *blockHeader) {
		fromList.BlockCount++
		fromList.BlockBytes += current.size
		if current.status != statusFree {
			fromList.AllocationCount++
			fromList.AllocationBytes += current.size
		}
	})

	mappedBytes, mappedCount := sumMapped()
	fromMapped := Statistics{
		BlockCount:      mappedCount,
		AllocationCount: mappedCount,
		BlockBytes:      mappedBytes,
		AllocationBytes: mappedBytes,
	}

	var stats Statistics
	stats.addStatistics(&fromList)
	stats.addStatistics(&fromMapped)
	return stats
}

// CollectDetailedStatistics is CollectStatistics plus the min/max size of
// every free range and every live allocation.
func CollectDetailedStatistics() DetailedStatistics {
	var stats DetailedStatistics
	stats.clear()

	walkList(func(_, current *blockHeader) {
		stats.Statistics.BlockCount++
		stats.Statistics.BlockBytes += current.size
		if current.status == statusFree {
			stats.addUnusedRange(current.size)
		} else {
			stats.addAllocation(current.size)
		}
	})

	mappedRegistry.Iter(func(_ uintptr, size uintptr) bool {
		stats.Statistics.BlockCount++
		stats.Statistics.BlockBytes += size
		stats.addAllocation(size)
		return false
	})

	return stats
}
