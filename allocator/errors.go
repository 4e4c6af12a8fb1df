package allocator

import "github.com/pkg/errors"

// ErrInconsistentHeap is the base error wrapped by Validate when the
// break-region list violates one of the invariants in spec.md section 3. It is never returned by the four
// entry points themselves -- see section 7's error taxonomy.
var ErrInconsistentHeap error = errors.New("heap metadata is inconsistent")

// ErrUnknownHandle is wrapped by registry lookups when an address is not
// present in the mapped-region registry.
var ErrUnknownHandle error = errors.New("address is not a live mapped allocation")
