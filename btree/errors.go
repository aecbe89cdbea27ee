package btree

import "github.com/pkg/errors"

var (
	// ErrCorruptPage means decoded bytes violate the node-kind or
	// free-slot-flag invariants. There is no local recovery; the error
	// propagates to the caller unmodified.
	ErrCorruptPage = errors.New("corrupt page")

	// ErrRowTooLarge means the encoded row does not fit in a leaf slot.
	ErrRowTooLarge = errors.New("row too large for leaf slot")

	// ErrCapacityExceeded means a node had no free slot where the split
	// algorithm guarantees one. It indicates a logic defect.
	ErrCapacityExceeded = errors.New("node capacity exceeded")

	// ErrClosed is returned by pager operations after Close.
	ErrClosed = errors.New("pager is closed")
)
