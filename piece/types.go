package piece

import (
	"errors"
	"fmt"
)

// Sentinel errors for piece construction and alignment validation.
var (
	// ErrZeroLength indicates a Piece whose End is before its Start.
	ErrZeroLength = errors.New("piece: end before start")

	// ErrLengthMismatch indicates two pieces offered to a merge have
	// different lengths.
	ErrLengthMismatch = errors.New("piece: length mismatch")

	// ErrEmptyAlignment indicates an Alignment with no aligned pairs.
	ErrEmptyAlignment = errors.New("piece: alignment has no pairs")
)

// ContigID identifies a sequence (chromosome, scaffold, contig, read, ...)
// within the external sequence store. It is opaque to this package; callers
// assign and interpret these however their sequence store requires.
type ContigID uint64

// Piece is a signed, 1-based closed interval on a contig.
//
// Start >= 1 denotes the forward strand on [Start, End].
// Start < 1 denotes the reverse strand on [-End, -Start].
// The length invariant End - Start >= 0 always holds for validly
// constructed pieces (see NewPiece).
type Piece struct {
	Contig ContigID
	Start  int64
	End    int64
}

// NewPiece validates and returns a Piece. It returns ErrZeroLength if
// end < start.
func NewPiece(contig ContigID, start, end int64) (Piece, error) {
	if end < start {
		return Piece{}, fmt.Errorf("%w: contig=%d start=%d end=%d", ErrZeroLength, contig, start, end)
	}
	return Piece{Contig: contig, Start: start, End: end}, nil
}

// Forward reports whether p lies on the forward strand.
func (p Piece) Forward() bool { return p.Start >= 1 }

// Length returns the number of bases spanned by p.
func (p Piece) Length() int64 { return p.End - p.Start + 1 }

// ForwardCoords returns the unsigned forward-strand coordinates of p,
// regardless of p's own strand: lo is always <= hi.
func (p Piece) ForwardCoords() (lo, hi int64) {
	if p.Forward() {
		return p.Start, p.End
	}
	return -p.End, -p.Start
}

// Reverse returns the Piece denoting the same bases on the opposite strand.
func (p Piece) Reverse() Piece {
	return Piece{Contig: p.Contig, Start: -p.End, End: -p.Start}
}

// Trim returns p with n bases removed from each end. The caller must ensure
// n*2 < p.Length(); Trim does not itself enforce the "too short" rule from
// the annealing driver's filter-then-merge step (see anneal.Pipeline).
func (p Piece) Trim(n int64) Piece {
	return Piece{Contig: p.Contig, Start: p.Start + n, End: p.End - n}
}

// PairType classifies one position of an Alignment.
type PairType uint8

const (
	// Match indicates both sides of the pair are aligned bases eligible
	// for a pinch merge.
	Match PairType = iota
	// Gap indicates an indel; gapped pairs are never merged.
	Gap
)

// AlignedPair is one column of a pairwise alignment: a piece from each
// side, equal in length, plus its Type.
type AlignedPair struct {
	A, B Piece
	Type PairType
}

// Length returns the shared length of the pair's two pieces. Callers should
// validate equality via Validate before relying on this for Match pairs.
func (ap AlignedPair) Length() int64 { return ap.A.Length() }

// Alignment is the in-memory pairwise alignment format pulled from an
// anneal.AlignmentSource: an ordered list of aligned segment pairs plus a
// score, as produced by some external aligner.
type Alignment struct {
	Pairs []AlignedPair
	Score float64
}

// Validate checks that every Match pair has equal-length sides, and that the
// alignment is non-empty. Gap pairs are not length-checked against their
// counterpart (only one side of a gap column carries real bases in most
// aligners; the zero-length side is informational only).
func (a *Alignment) Validate() error {
	if len(a.Pairs) == 0 {
		return ErrEmptyAlignment
	}
	for i, p := range a.Pairs {
		if p.Type != Match {
			continue
		}
		if p.A.Length() != p.B.Length() {
			return fmt.Errorf("%w: pair %d: %d != %d", ErrLengthMismatch, i, p.A.Length(), p.B.Length())
		}
	}
	return nil
}
