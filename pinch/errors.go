package pinch

import "errors"

// Sentinel errors for the pinch package. Wrap with github.com/pkg/errors at
// the point raised when stack context is useful (see CheckGraph); compare
// with errors.Is everywhere else.
var (
	// ErrLengthMismatch indicates a Merge was offered two pieces of
	// different lengths.
	ErrLengthMismatch = errors.New("pinch: piece length mismatch")

	// ErrVertexNotFound indicates an operation referenced a vertex ID
	// that is not (or is no longer) present in the Graph.
	ErrVertexNotFound = errors.New("pinch: vertex not found")

	// ErrBlockNotFound indicates an operation referenced a block ID that
	// is not (or is no longer) present in the Graph.
	ErrBlockNotFound = errors.New("pinch: block not found")

	// ErrThreadNotFound indicates a contig with no seeded thread was
	// referenced by a merge.
	ErrThreadNotFound = errors.New("pinch: thread not found for contig")

	// ErrZeroLengthThread indicates Construct was given a SeedThread with
	// non-positive length.
	ErrZeroLengthThread = errors.New("pinch: zero-length thread")

	// ErrBlockSplitUnsupported indicates a Merge call required splitting
	// an existing block at a position interior to it. See DESIGN.md.
	ErrBlockSplitUnsupported = errors.New("pinch: splitting an existing block is unsupported")

	// ErrInvariant indicates CheckGraph found a violated structural
	// invariant. Never recoverable locally; see anneal.Run.
	ErrInvariant = errors.New("pinch: invariant violation")
)
