//go:build allocator_debug

package allocator

// debugValidate calls Validate and panics if it returns an error. Entry
// points call this at their start and end when built with the
// allocator_debug tag, mirroring memutils.DebugValidate in the teacher
// package. It no-ops in production builds -- see validate_prod.go.
func debugValidate() {
	if err := Validate(); err != nil {
		panic(err)
	}
}
