package flower

import "errors"

// Sentinel errors for the flower package.
var (
	// ErrNotTerminal indicates an operation that requires a terminal
	// flower (no nested children anywhere in its groups) was called on
	// one that isn't.
	ErrNotTerminal = errors.New("flower: not terminal")

	// ErrAlreadyBuilt indicates SetBuiltBlocks was called twice on the
	// same flower; a flower's block set is fixed once materialised.
	ErrAlreadyBuilt = errors.New("flower: blocks already built")

	// ErrTooManyGroups indicates a tangle produced more groups than a
	// single flower net may hold without a nested child.
	ErrTooManyGroups = errors.New("flower: too many groups for a single net")

	// ErrUnknownEnd indicates a reference to an End name not present in
	// the flower. CheckRecursive also returns it for a nested flower whose
	// Parent or group name does not match where it is attached.
	ErrUnknownEnd = errors.New("flower: unknown end")
)
