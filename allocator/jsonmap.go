package allocator

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// WriteDetailedMap serializes every break-region block and every mapped
// region to JSON: one object per block with its offset, size, and status.
// This is the "printing utility" spec.md treats as an external
// collaborator -- kept here only as a thin diagnostic, grounded on
// TLSFBlockMetadata.PrintDetailedMapHeader and memoryBlockList.PrintDetailedMap
// in the teacher package. It does not gate or influence any allocator
// decision.
func WriteDetailedMap() ([]byte, error) {
	w := jwriter.NewWriter()
	root := w.Object()

	root.Name("TotalBreakBytes").Int(int(totalBreakBytes))

	blocks := root.Name("BreakBlocks").Array()
	walkList(func(_, current *blockHeader) {
		b := blocks.Object()
		b.Name("Offset").Int(int(current.addr()))
		b.Name("Size").Int(int(current.size))
		b.Name("Status").String(current.status.String())
		b.End()
	})
	blocks.End()

	mapped := root.Name("MappedBlocks").Array()
	mappedRegistry.Iter(func(addr uintptr, size uintptr) bool {
		b := mapped.Object()
		b.Name("Offset").Int(int(addr))
		b.Name("Size").Int(int(size))
		b.Name("Status").String(statusMapped.String())
		b.End()
		return false
	})
	mapped.End()

	root.End()

	return w.Bytes(), w.Error()
}
