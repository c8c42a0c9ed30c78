package anneal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/comparomics/cactuscore/piece"
)

// AlignmentSource streams pairwise alignments into the pipeline. Next
// returns io.EOF once exhausted.
type AlignmentSource interface {
	Start(ctx context.Context) error
	Next(ctx context.Context) (*piece.Alignment, error)
}

// SequenceStore resolves contig substrings. Implementations are expected to
// be safe for concurrent use; Pipeline never mutates through it.
type SequenceStore interface {
	GetString(ctx context.Context, contig piece.ContigID, start, length int64, forward bool) (string, error)
}

// MapSequenceStore is an in-memory SequenceStore backed by a map of whole
// contig sequences, useful for tests and small ad hoc runs.
type MapSequenceStore struct {
	mu        sync.RWMutex
	sequences map[piece.ContigID]string
}

// NewMapSequenceStore returns a MapSequenceStore over the given sequences.
func NewMapSequenceStore(sequences map[piece.ContigID]string) *MapSequenceStore {
	clone := make(map[piece.ContigID]string, len(sequences))
	for k, v := range sequences {
		clone[k] = v
	}
	return &MapSequenceStore{sequences: clone}
}

// GetString implements SequenceStore.
func (m *MapSequenceStore) GetString(_ context.Context, contig piece.ContigID, start, length int64, forward bool) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seq, ok := m.sequences[contig]
	if !ok {
		return "", fmt.Errorf("anneal: unknown contig %d", contig)
	}
	if start < 1 || length < 0 || start+length-1 > int64(len(seq)) {
		return "", fmt.Errorf("anneal: range [%d,%d) out of bounds for contig %d (len %d)", start, start+length, contig, len(seq))
	}
	sub := seq[start-1 : start-1+length]
	if forward {
		return sub, nil
	}
	return reverseComplement(sub), nil
}

func reverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = complementBase(s[i])
	}
	return string(out)
}

// complementBase returns the complementary base, preserving the input's
// case: a soft-masked (lowercase) repeat base must stay lowercase through
// the reverse complement, or isRepeatMasked's lowercase check would never
// see it on the reverse strand.
func complementBase(b byte) byte {
	lower := b >= 'a' && b <= 'z'
	upper := b
	if lower {
		upper = b - ('a' - 'A')
	}
	var c byte
	switch upper {
	case 'A':
		c = 'T'
	case 'T':
		c = 'A'
	case 'C':
		c = 'G'
	case 'G':
		c = 'C'
	default:
		c = 'N'
	}
	if lower {
		c += 'a' - 'A'
	}
	return c
}

// sliceAlignmentSource adapts a pre-built slice of alignments into an
// AlignmentSource; used by tests and by callers that have already loaded
// every alignment into memory.
type sliceAlignmentSource struct {
	items []*piece.Alignment
	pos   int
}

// NewSliceAlignmentSource returns an AlignmentSource over items, in order.
func NewSliceAlignmentSource(items []*piece.Alignment) AlignmentSource {
	return &sliceAlignmentSource{items: items}
}

func (s *sliceAlignmentSource) Start(context.Context) error { return nil }

func (s *sliceAlignmentSource) Next(context.Context) (*piece.Alignment, error) {
	if s.pos >= len(s.items) {
		return nil, io.EOF
	}
	a := s.items[s.pos]
	s.pos++
	return a, nil
}
