//go:build !allocator_debug

package allocator

// debugValidate no-ops unless the allocator_debug build tag is present.
func debugValidate() {}
