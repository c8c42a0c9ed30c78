package anneal

import "errors"

// Sentinel errors for the anneal package.
var (
	// ErrNoSequenceStore indicates a round needed to check for repeat
	// masking (AlignRepeatsAtRound not yet reached) but NewPipeline was
	// never given a SequenceStore.
	ErrNoSequenceStore = errors.New("anneal: repeat-masking check requires a SequenceStore")
)
