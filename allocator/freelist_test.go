package allocator

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	require.Equal(t, uintptr(0), align(0))
	require.Equal(t, uintptr(8), align(1))
	require.Equal(t, uintptr(8), align(8))
	require.Equal(t, uintptr(16), align(9))
	require.Equal(t, uintptr(24), align(17))
}

func TestAlignedSizeIncludesHeader(t *testing.T) {
	require.Equal(t, headerSize+8, alignedSize(1))
	require.Equal(t, headerSize+16, alignedSize(9))
}

// withFakeHeap swaps the package-level free list onto a local byte buffer
// for the duration of fn, then restores the previous heapBase and
// totalBreakBytes so that other tests touching the real break-backed heap
// are unaffected.
func withFakeHeap(t *testing.T, buf []byte, fn func()) {
	t.Helper()

	savedBase := heapBase
	savedTotal := totalBreakBytes
	t.Cleanup(func() {
		heapBase = savedBase
		totalBreakBytes = savedTotal
	})

	heapBase = uintptr(unsafe.Pointer(&buf[0]))
	totalBreakBytes = uintptr(len(buf))

	h := headerAt(heapBase)
	h.size = uintptr(len(buf))
	h.status = statusFree
	h.next = 0

	fn()
}

func TestBestFitPicksSmallestSufficientFreeBlock(t *testing.T) {
	buf := make([]byte, 4096)
	withFakeHeap(t, buf, func() {
		first := headerAt(heapBase)
		splitIfProfitable(first, alignedSize(16))
		first.status = statusAlloc

		second := first.nextHeader()
		require.NotNil(t, second)
		splitIfProfitable(second, alignedSize(16))
		// second is now split into a small FREE head and a FREE tail;
		// leave both FREE so bestFit has two candidates of different size.

		best := bestFit(alignedSize(8))
		require.NotNil(t, best)
		require.Equal(t, second.addr(), best.addr())
	})
}

func TestCoalesceMergesAdjacentFreeBlocks(t *testing.T) {
	buf := make([]byte, 4096)
	withFakeHeap(t, buf, func() {
		head := headerAt(heapBase)
		splitIfProfitable(head, alignedSize(16))
		head.status = statusFree // both halves FREE, should merge

		tail := coalesce()
		require.NotNil(t, tail)
		require.Equal(t, heapBase, tail.addr())
		require.Equal(t, uintptr(len(buf)), tail.size)
		require.Equal(t, uintptr(0), tail.next)
	})
}

func TestCoalesceDoesNotMergeAllocBlockWithFreeSuccessor(t *testing.T) {
	buf := make([]byte, 4096)
	withFakeHeap(t, buf, func() {
		head := headerAt(heapBase)
		splitIfProfitable(head, alignedSize(16))
		head.status = statusAlloc

		tail := head.nextHeader()
		require.NotNil(t, tail)
		require.Equal(t, statusFree, tail.status)

		coalesce()
		require.Equal(t, statusAlloc, head.status)
		require.Equal(t, head.next, tail.addr())
	})
}

func TestSplitIfProfitableLeavesBlockWholeWhenRemainderTooSmall(t *testing.T) {
	buf := make([]byte, 256)
	withFakeHeap(t, buf, func() {
		block := headerAt(heapBase)
		originalSize := block.size

		// Request nearly the whole block, leaving less than minBlockSize
		// behind -- no split should occur.
		splitIfProfitable(block, originalSize-1)

		require.Equal(t, originalSize, block.size)
		require.Equal(t, uintptr(0), block.next)
	})
}

func TestInspectMappedReportsUnknownAddressAndSize(t *testing.T) {
	_, err := InspectMapped(0xdeadbeef)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownHandle)

	registerMapped(0x1000, 4096)
	t.Cleanup(func() { unregisterMapped(0x1000) })

	size, err := InspectMapped(0x1000)
	require.NoError(t, err)
	require.Equal(t, uintptr(4096), size)
}

func TestSplitIfProfitableCreatesFreeSuffix(t *testing.T) {
	buf := make([]byte, 4096)
	withFakeHeap(t, buf, func() {
		block := headerAt(heapBase)
		requested := alignedSize(16)

		splitIfProfitable(block, requested)

		require.Equal(t, requested, block.size)
		require.NotEqual(t, uintptr(0), block.next)

		suffix := block.nextHeader()
		require.NotNil(t, suffix)
		require.Equal(t, statusFree, suffix.status)
		require.Equal(t, uintptr(len(buf))-requested, suffix.size)
	})
}
